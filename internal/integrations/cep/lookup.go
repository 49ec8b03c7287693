package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var ErrAddressNotFound = errors.New("address not found")
var ErrLookupFailed = errors.New("address lookup failed")

type Result struct {
	Display string `json:"display"`
	CEP     string `json:"cep,omitempty"`
	Lat     string `json:"lat,omitempty"`
	Lon     string `json:"lon,omitempty"`
}

// Client decide entre consulta por CEP (ViaCEP) e busca textual
// (Nominatim) conforme o formato da entrada.
type Client struct {
	viaCEPURL    string
	nominatimURL string
	http         *http.Client
}

func NewClient(viaCEPURL, nominatimURL string) *Client {
	return &Client{
		viaCEPURL:    viaCEPURL,
		nominatimURL: nominatimURL,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

var digitsOnly = regexp.MustCompile(`\D`)

// IsCEP: só é CEP quando a entrada tem exatamente 8 dígitos,
// ignorando separadores.
func IsCEP(input string) bool {
	return len(digitsOnly.ReplaceAllString(input, "")) == 8
}

func (c *Client) Search(ctx context.Context, input string) ([]Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrAddressNotFound
	}

	if IsCEP(input) {
		return c.byCEP(ctx, digitsOnly.ReplaceAllString(input, ""))
	}
	return c.byText(ctx, input)
}

// --------------------------------------------------
// ViaCEP
// --------------------------------------------------

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

func (c *Client) byCEP(ctx context.Context, cep string) ([]Result, error) {
	reqURL := fmt.Sprintf("%s/%s/json/", c.viaCEPURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if body.Erro {
		return nil, ErrAddressNotFound
	}

	return []Result{{
		Display: joinParts(body.Logradouro, body.Bairro, body.Localidade, body.UF),
		CEP:     body.CEP,
	}}, nil
}

// --------------------------------------------------
// Nominatim
// --------------------------------------------------

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *Client) byText(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("countrycodes", "br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nominatimURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim exige identificação do consumidor
	req.Header.Set("User-Agent", "oficina-api/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(body) == 0 {
		return nil, ErrAddressNotFound
	}

	results := make([]Result, 0, len(body))
	for _, item := range body {
		results = append(results, Result{
			Display: item.DisplayName,
			Lat:     item.Lat,
			Lon:     item.Lon,
		})
	}
	return results, nil
}

// joinParts monta a string de exibição descartando campos vazios e
// repetidos.
func joinParts(parts ...string) string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}
