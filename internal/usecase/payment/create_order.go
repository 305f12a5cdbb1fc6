package payment

import (
	"context"
	"math"

	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type CreateOrderInput struct {
	UserID   uint
	Amount   float64 // minor units; rounded to an integer before the gateway call
	Currency string
	Receipt  string
}

type CreateOrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type CreateOrder struct {
	repo    domain.Repository
	gateway domain.Gateway
	keyID   string
}

func NewCreateOrder(repo domain.Repository, gateway domain.Gateway, keyID string) *CreateOrder {
	return &CreateOrder{
		repo:    repo,
		gateway: gateway,
		keyID:   keyID,
	}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if uc.gateway == nil || uc.keyID == "" {
		return nil, domain.ErrNotConfigured
	}

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	order, err := uc.gateway.CreateOrder(ctx, int64(math.Round(in.Amount)), currency, in.Receipt)
	if err != nil {
		return nil, &domain.GatewayError{Err: err}
	}

	record := &models.Payment{
		UserID:   in.UserID,
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   string(domain.StatusCreated),
	}
	if order.Notes != nil {
		record.Meta = models.JSONMap{"notes": order.Notes}
	}

	if err := uc.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    uc.keyID,
	}, nil
}
