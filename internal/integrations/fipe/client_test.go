package fipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupUsesFallbackWhenPrimaryFails(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"marca":"FIAT","modelo":"UNO MILLE","ano":"2010","cor":"PRATA","municipio":"SAO PAULO","uf":"SP"}`))
	}))
	defer fallback.Close()

	c := NewClient(primary.URL, fallback.URL)

	info, err := c.Lookup(context.Background(), "abc1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Brand != "FIAT" || info.Model != "UNO MILLE" {
		t.Fatalf("unexpected payload: %+v", info)
	}
	if info.Plate != "ABC-1234" {
		t.Fatalf("plate not formatted: %q", info.Plate)
	}
}

func TestLookupNotFoundSkipsFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer primary.Close()

	fallbackHit := false
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHit = true
		w.Write([]byte(`{"marca":"FIAT","modelo":"UNO"}`))
	}))
	defer fallback.Close()

	c := NewClient(primary.URL, fallback.URL)

	_, err := c.Lookup(context.Background(), "ABC1234")
	if !errors.Is(err, ErrPlateNotFound) {
		t.Fatalf("want ErrPlateNotFound, got %v", err)
	}
	if fallbackHit {
		t.Fatal("fallback should not be queried for a definitive not-found")
	}
}

func TestLookupRejectsInvalidPlateBeforeQuerying(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	_, err := c.Lookup(context.Background(), "not-a-plate")
	if !errors.Is(err, ErrPlateNotFound) {
		t.Fatalf("want ErrPlateNotFound, got %v", err)
	}
	if hit {
		t.Fatal("provider should not be queried for an invalid plate")
	}
}

func TestLookupEmptyBodyMeansNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	_, err := c.Lookup(context.Background(), "ABC1234")
	if !errors.Is(err, ErrPlateNotFound) {
		t.Fatalf("want ErrPlateNotFound, got %v", err)
	}
}
