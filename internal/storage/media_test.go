package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	key         string
	contentType string
	size        int
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.key = *params.Key
	f.contentType = *params.ContentType

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(params.Body); err != nil {
		return nil, err
	}
	f.size = buf.Len()

	return &s3.PutObjectOutput{}, nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveImagePublishesWebP(t *testing.T) {
	putter := &fakePutter{}
	store := NewMediaStoreWithClient(putter, "test-bucket", "us-east-1")

	url, err := store.SaveImage(context.Background(), "logos", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(putter.key, "logos/") || !strings.HasSuffix(putter.key, ".webp") {
		t.Fatalf("key = %q", putter.key)
	}
	if putter.contentType != "image/webp" {
		t.Fatalf("content type = %q", putter.contentType)
	}
	if putter.size == 0 {
		t.Fatal("empty body uploaded")
	}

	want := "https://test-bucket.s3.us-east-1.amazonaws.com/" + putter.key
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	store := NewMediaStoreWithClient(&fakePutter{}, "b", "r")

	_, err := store.SaveImage(context.Background(), "logos", strings.NewReader("not an image"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("want ErrInvalidImage, got %v", err)
	}
}

func TestResizeCapsWidth(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2048, 1024))

	out := resize(img)
	if out.Bounds().Dx() != maxWidth {
		t.Fatalf("width = %d, want %d", out.Bounds().Dx(), maxWidth)
	}
	if out.Bounds().Dy() != 512 {
		t.Fatalf("height = %d, want 512", out.Bounds().Dy())
	}
}

func TestResizeKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	out := resize(img)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("bounds = %v", out.Bounds())
	}
}
