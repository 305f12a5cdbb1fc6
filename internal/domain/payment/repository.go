package payment

import (
	"context"

	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// Order mirrors the record minted by the external processor.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]any
}

// Gateway mints orders on the external processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

type Repository interface {
	Create(ctx context.Context, p *models.Payment) error

	// MarkPaid flips the order identified by its external id to "paid" and
	// attaches the settled payment id. The write is idempotent: repeating it
	// with the same inputs is a no-op rewrite of the same values. A missing
	// local record returns gorm's not-found through the implementation.
	MarkPaid(ctx context.Context, orderID, paymentID string) (*models.Payment, error)
}
