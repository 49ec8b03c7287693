package fipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrPlateNotFound = errors.New("plate not found")
var ErrLookupFailed = errors.New("plate lookup failed")

type PlateInfo struct {
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
	Color string `json:"color"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Client consulta o provedor primário de placas e, se ele falhar,
// tenta no máximo um provedor alternativo.
type Client struct {
	baseURL     string
	fallbackURL string
	http        *http.Client
}

func NewClient(baseURL, fallbackURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		fallbackURL: fallbackURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Lookup(ctx context.Context, plate string) (*PlateInfo, error) {
	clean := NormalizePlate(plate)
	if !IsValidPlate(clean) {
		return nil, ErrPlateNotFound
	}

	info, err := c.query(ctx, c.baseURL, clean)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, ErrPlateNotFound) {
		return nil, err
	}

	if c.fallbackURL != "" {
		return c.query(ctx, c.fallbackURL, clean)
	}
	return nil, err
}

type providerResponse struct {
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Ano       string `json:"ano"`
	AnoModelo string `json:"anoModelo"`
	Cor       string `json:"cor"`
	Municipio string `json:"municipio"`
	UF        string `json:"uf"`
}

func (c *Client) query(ctx context.Context, baseURL, plate string) (*PlateInfo, error) {
	url := fmt.Sprintf("%s/%s/json", baseURL, plate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPlateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if body.Modelo == "" && body.Marca == "" {
		return nil, ErrPlateNotFound
	}

	year := body.Ano
	if year == "" {
		year = body.AnoModelo
	}

	return &PlateInfo{
		Plate: FormatPlate(plate),
		Brand: body.Marca,
		Model: body.Modelo,
		Year:  year,
		Color: body.Cor,
		City:  body.Municipio,
		State: body.UF,
	}, nil
}
