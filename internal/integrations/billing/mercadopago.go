package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
)

var ErrMissingAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// Preços dos planos pagos (BRL/mês).
const (
	PlanPro        = "pro"
	PlanProMonthly = 49.90
)

type Subscription struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	InitPoint string `json:"init_point"`
}

// PreapprovalCreator é a fatia do SDK que o gateway usa; interface
// para permitir dublês em teste.
type PreapprovalCreator interface {
	Create(ctx context.Context, request preapproval.Request) (*preapproval.Response, error)
}

type Gateway struct {
	client PreapprovalCreator
	appURL string
}

func NewGateway(accessToken, appURL string) (*Gateway, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Gateway{
		client: preapproval.NewClient(cfg),
		appURL: appURL,
	}, nil
}

// NewGatewayWithClient existe para os testes injetarem o creator.
func NewGatewayWithClient(client PreapprovalCreator, appURL string) *Gateway {
	return &Gateway{client: client, appURL: appURL}
}

// CreateSubscription abre uma assinatura mensal do plano pro para a
// oficina. O id devolvido precisa ser persistido pelo chamador; a
// chamada ao provedor e a gravação local não são transacionais.
func (g *Gateway) CreateSubscription(ctx context.Context, workshopID uint, payerEmail string) (*Subscription, error) {
	if g == nil || g.client == nil {
		return nil, ErrGatewayNotConfigured
	}

	req := preapproval.Request{
		Reason:            "Assinatura OficinaPlus Pro",
		ExternalReference: fmt.Sprintf("workshop-%d", workshopID),
		PayerEmail:        payerEmail,
		BackURL:           strings.TrimRight(g.appURL, "/") + "/oficina/assinatura",
		AutoRecurring: &preapproval.AutoRecurringRequest{
			Frequency:         1,
			FrequencyType:     "months",
			TransactionAmount: PlanProMonthly,
			CurrencyID:        "BRL",
		},
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		ID:        resp.ID,
		Status:    resp.Status,
		InitPoint: resp.InitPoint,
	}, nil
}

// IsGatewayUnauthorized classifica o erro bruto do provedor.
func IsGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401")
}
