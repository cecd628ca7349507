package services

import (
	"context"

	"linguactl/internal/models"
	"linguactl/internal/providers"
)

type PurchaseInterface interface {
	CreateCheckout(ctx context.Context, tierId string) (string, error)
}

// PurchaseService starts a checkout for a pricing tier. The returned URL
// points at the external payment page; completion comes back through the
// launch URL (`purchased` / `cancelled`) and is handled by the bootstrap.
type PurchaseService struct {
	api    providers.ApiClientInterface
	logger providers.Logger
}

func NewPurchaseService(api providers.ApiClientInterface, logger providers.Logger) PurchaseInterface {
	return &PurchaseService{
		api:    api,
		logger: logger,
	}
}

func (p *PurchaseService) CreateCheckout(ctx context.Context, tierId string) (string, error) {
	if tierId == "" {
		return "", &providers.ValidationError{Message: "tier is required"}
	}

	var resp models.CheckoutResponse
	if err := p.api.Post(ctx, "/api/create-checkout", &models.CheckoutRequest{TierId: tierId}, &resp); err != nil {
		return "", err
	}
	if resp.Url == "" {
		return "", &providers.TransientError{Message: "checkout response missing url"}
	}

	p.logger.Infof(providers.TypeApp, "Checkout created for tier %s", tierId)
	return resp.Url, nil
}
