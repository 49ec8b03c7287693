package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func TestDiagnoseExtractsMarkers(t *testing.T) {
	gen := &fakeGenerator{
		response: "Provável falha na bomba de combustível.\n" +
			"Severidade: Alta\n" +
			"Seguro dirigir: não\n" +
			"Custo estimado: R$ 800 a R$ 1.200",
	}

	d, err := Diagnose(context.Background(), gen, "carro morre em marcha lenta", "Fiat Uno 2010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Model != "fake-model" {
		t.Fatalf("model = %q", d.Model)
	}
	if d.Severity == nil || *d.Severity != "alta" {
		t.Fatalf("severity = %v, want alta", d.Severity)
	}
	if d.SafeToDrive == nil || *d.SafeToDrive {
		t.Fatalf("safe_to_drive = %v, want false", d.SafeToDrive)
	}
	if d.EstimatedCost == nil || !strings.HasPrefix(*d.EstimatedCost, "R$ 800") {
		t.Fatalf("estimated_cost = %v", d.EstimatedCost)
	}

	if !strings.Contains(gen.prompt, "carro morre em marcha lenta") {
		t.Fatal("symptoms missing from prompt")
	}
	if !strings.Contains(gen.prompt, "Veículo: Fiat Uno 2010") {
		t.Fatal("vehicle info missing from prompt")
	}
}

func TestDiagnoseWithoutMarkersKeepsFieldsNil(t *testing.T) {
	gen := &fakeGenerator{response: "Pode ser muita coisa, leve a um mecânico."}

	d, err := Diagnose(context.Background(), gen, "barulho estranho", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Severity != nil || d.SafeToDrive != nil || d.EstimatedCost != nil {
		t.Fatalf("expected nil metadata, got %+v", d)
	}
	if d.Text != gen.response {
		t.Fatal("free text must survive untouched")
	}
}

func TestDiagnosePropagatesProviderError(t *testing.T) {
	gen := &fakeGenerator{err: ErrQuotaExceeded}

	_, err := Diagnose(context.Background(), gen, "sintoma", "")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
}

func TestParseMarkersVariants(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		severity string
		safe     *bool
	}{
		{"acento em média", "Severidade: média\nSeguro dirigir: sim", "media", boolPtr(true)},
		{"sem acento", "severidade: media\nseguro dirigir: NÃO", "media", boolPtr(false)},
		{"maiúsculas", "SEVERIDADE: BAIXA", "baixa", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Diagnosis
			ParseMarkers(tc.text, &d)

			if d.Severity == nil || *d.Severity != tc.severity {
				t.Fatalf("severity = %v, want %q", d.Severity, tc.severity)
			}
			if tc.safe == nil {
				if d.SafeToDrive != nil {
					t.Fatalf("safe = %v, want nil", *d.SafeToDrive)
				}
			} else if d.SafeToDrive == nil || *d.SafeToDrive != *tc.safe {
				t.Fatalf("safe = %v, want %v", d.SafeToDrive, *tc.safe)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
