package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"github.com/oficinaplus/oficina-api/internal/config"
)

var ErrNotConfigured = errors.New("media storage not configured")
var ErrInvalidImage = errors.New("invalid image")

// Limite de largura das imagens servidas pelo app.
const maxWidth = 1024

// ObjectPutter é a fatia do cliente S3 usada aqui.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaStore converte uploads (JPEG/PNG) para WebP redimensionado e
// grava no S3.
type MediaStore struct {
	client ObjectPutter
	bucket string
	region string
}

func NewMediaStore(cfg *config.Config) (*MediaStore, error) {
	if cfg.S3Bucket == "" || cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" {
		return nil, ErrNotConfigured
	}

	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	})

	return &MediaStore{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// NewMediaStoreWithClient existe para os testes injetarem o putter.
func NewMediaStoreWithClient(client ObjectPutter, bucket, region string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket, region: region}
}

// SaveImage decodifica, redimensiona e publica a imagem; devolve a
// URL pública do objeto.
func (m *MediaStore) SaveImage(ctx context.Context, prefix string, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", ErrInvalidImage
	}

	src = resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 80}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key), nil
}

func resize(src image.Image) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	ratio := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
