package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/models"
)

// RefundSender reverses the online payment of a booking. Called during
// cancellation of a paid booking; a refund failure fails the cancellation.
type RefundSender interface {
	Refund(ctx context.Context, b *models.Booking) error
}

// MercadoPagoRefunder issues full refunds through the Mercado Pago API.
type MercadoPagoRefunder struct {
	client refund.Client
}

func NewMercadoPagoRefunder(accessToken string) (*MercadoPagoRefunder, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoRefunder{client: refund.NewClient(cfg)}, nil
}

func (r *MercadoPagoRefunder) Refund(ctx context.Context, b *models.Booking) error {
	if b.GatewayPaymentID == 0 {
		return apperr.Internal("refund_missing_payment", nil)
	}

	if _, err := r.client.Create(ctx, int(b.GatewayPaymentID)); err != nil {
		return apperr.Internal("refund_failed", err)
	}
	return nil
}
