package repository

import (
	"context"

	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// PaymentGormRepository resolves the managed connection per call so the
// repository keeps working once a delayed startup connection lands.
type PaymentGormRepository struct {
	db *db.Manager
}

var _ domain.Repository = (*PaymentGormRepository)(nil)

func NewPaymentGormRepository(dbm *db.Manager) *PaymentGormRepository {
	return &PaymentGormRepository{db: dbm}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p *models.Payment) error {
	gdb, err := r.db.DB()
	if err != nil {
		return err
	}
	return gdb.WithContext(ctx).Create(p).Error
}

// MarkPaid is keyed by the unique external order id; the store's own
// last-write-wins on that key makes concurrent re-verification safe.
func (r *PaymentGormRepository) MarkPaid(ctx context.Context, orderID, paymentID string) (*models.Payment, error) {
	gdb, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var record models.Payment
	if err := gdb.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&record).Error; err != nil {
		return nil, err
	}

	if err := gdb.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"payment_id": paymentID,
			"status":     string(domain.StatusPaid),
		}).Error; err != nil {
		return nil, err
	}

	record.PaymentID = paymentID
	record.Status = string(domain.StatusPaid)
	return &record, nil
}
