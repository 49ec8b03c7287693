package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Generator é a fatia do cliente de IA que o diagnóstico usa;
// interface para permitir dublês em teste.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

type Diagnosis struct {
	Text          string  `json:"text"`
	Severity      *string `json:"severity"`
	SafeToDrive   *bool   `json:"safe_to_drive"`
	EstimatedCost *string `json:"estimated_cost"`
	Model         string  `json:"model"`
}

const diagnosisPrompt = `Você é um mecânico experiente. Um motorista descreve os sintomas do veículo e você responde com um diagnóstico provável.

Sintomas: %s
%s
Responda em português e termine SEMPRE com estas três linhas, exatamente neste formato:
Severidade: baixa | média | alta
Seguro dirigir: sim | não
Custo estimado: R$ <faixa>`

// Diagnose monta o prompt fixo, chama o provedor e extrai os campos
// estruturados do texto livre. A extração é best-effort: se o modelo
// fugir do formato, os campos ficam nulos e o texto segue íntegro.
func Diagnose(ctx context.Context, gen Generator, symptoms, vehicleInfo string) (*Diagnosis, error) {
	vehicleLine := ""
	if vehicleInfo != "" {
		vehicleLine = fmt.Sprintf("Veículo: %s\n", vehicleInfo)
	}

	prompt := fmt.Sprintf(diagnosisPrompt, symptoms, vehicleLine)

	text, err := gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	d := &Diagnosis{
		Text:  text,
		Model: gen.ModelName(),
	}
	ParseMarkers(text, d)
	return d, nil
}

var (
	severityRe = regexp.MustCompile(`(?i)severidade:\s*(baixa|m[eé]dia|alta)`)
	safeRe     = regexp.MustCompile(`(?i)seguro dirigir:\s*(sim|n[aã]o)`)
	costRe     = regexp.MustCompile(`(?i)custo estimado:\s*(R\$\s?[0-9][0-9.,]*(?:\s*(?:a|-|até)\s*R?\$?\s?[0-9][0-9.,]*)?)`)
)

// ParseMarkers procura os marcadores no texto do modelo. Qualquer
// marcador ausente deixa o campo correspondente em nil.
func ParseMarkers(text string, d *Diagnosis) {
	if m := severityRe.FindStringSubmatch(text); m != nil {
		sev := normalizeSeverity(m[1])
		d.Severity = &sev
	}

	if m := safeRe.FindStringSubmatch(text); m != nil {
		safe := strings.EqualFold(m[1], "sim")
		d.SafeToDrive = &safe
	}

	if m := costRe.FindStringSubmatch(text); m != nil {
		cost := strings.TrimSpace(m[1])
		d.EstimatedCost = &cost
	}
}

func normalizeSeverity(raw string) string {
	switch strings.ToLower(raw) {
	case "media", "média":
		return "media"
	default:
		return strings.ToLower(raw)
	}
}
