package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// ---- fakes ----

type fakeRepo struct {
	records   map[string]*models.Payment
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*models.Payment)}
}

func (r *fakeRepo) Create(_ context.Context, p *models.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.records[p.OrderID] = &cp
	return nil
}

func (r *fakeRepo) MarkPaid(_ context.Context, orderID, paymentID string) (*models.Payment, error) {
	record, ok := r.records[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	record.PaymentID = paymentID
	record.Status = string(domain.StatusPaid)
	cp := *record
	return &cp, nil
}

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*domain.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amount
	g.lastCurrency = currency
	return &domain.Order{
		ID:       "order_abc",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// ---- CreateOrder ----

func TestCreateOrderPersistsMirrorRecord(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	uc := NewCreateOrder(repo, gw, "rzp_test_key")

	result, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:   7,
		Amount:   50000,
		Currency: "INR",
		Receipt:  "rcpt_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc", result.OrderID)
	assert.Equal(t, int64(50000), result.Amount)
	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, "rzp_test_key", result.KeyID)

	record := repo.records["order_abc"]
	require.NotNil(t, record)
	assert.Equal(t, uint(7), record.UserID)
	assert.Equal(t, string(domain.StatusCreated), record.Status)
	assert.Equal(t, int64(50000), record.Amount)
}

func TestCreateOrderRoundsToMinorUnits(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	uc := NewCreateOrder(repo, gw, "rzp_test_key")

	_, err := uc.Execute(context.Background(), CreateOrderInput{UserID: 1, Amount: 499.6})
	require.NoError(t, err)
	assert.Equal(t, int64(500), gw.lastAmount)
}

func TestCreateOrderDefaultsCurrency(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	uc := NewCreateOrder(repo, gw, "rzp_test_key")

	_, err := uc.Execute(context.Background(), CreateOrderInput{UserID: 1, Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, "INR", gw.lastCurrency)
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateOrder(repo, &fakeGateway{}, "rzp_test_key")

	for _, amount := range []float64{0, -1} {
		_, err := uc.Execute(context.Background(), CreateOrderInput{UserID: 1, Amount: amount})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.Empty(t, repo.records)
}

func TestCreateOrderRejectsWhenUnconfigured(t *testing.T) {
	uc := NewCreateOrder(newFakeRepo(), nil, "")
	_, err := uc.Execute(context.Background(), CreateOrderInput{UserID: 1, Amount: 100})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestCreateOrderWrapsGatewayFailure(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{err: errors.New("processor down")}
	uc := NewCreateOrder(repo, gw, "rzp_test_key")

	_, err := uc.Execute(context.Background(), CreateOrderInput{UserID: 1, Amount: 100})

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Empty(t, repo.records, "no record persisted on upstream failure")
}

// ---- VerifyPayment ----

func TestVerifyPaymentHappyPath(t *testing.T) {
	const secret = "test_key_secret"

	repo := newFakeRepo()
	repo.records["order_abc"] = &models.Payment{
		OrderID: "order_abc",
		Amount:  50000,
		Status:  string(domain.StatusCreated),
	}

	uc := NewVerifyPayment(repo, secret)

	record, err := uc.Execute(context.Background(), VerifyInput{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: domain.Signature(secret, "order_abc", "pay_123"),
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, string(domain.StatusPaid), record.Status)
	assert.Equal(t, "pay_123", record.PaymentID)
	assert.Equal(t, string(domain.StatusPaid), repo.records["order_abc"].Status)
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	const secret = "test_key_secret"

	repo := newFakeRepo()
	repo.records["order_abc"] = &models.Payment{
		OrderID: "order_abc",
		Status:  string(domain.StatusCreated),
	}

	uc := NewVerifyPayment(repo, secret)
	in := VerifyInput{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: domain.Signature(secret, "order_abc", "pay_123"),
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	record, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPaid), record.Status)
	assert.Equal(t, "pay_123", record.PaymentID)
}

func TestVerifyPaymentRejectsBadSignatureAndLeavesOrderUntouched(t *testing.T) {
	const secret = "test_key_secret"

	repo := newFakeRepo()
	repo.records["order_abc"] = &models.Payment{
		OrderID: "order_abc",
		Status:  string(domain.StatusCreated),
	}

	uc := NewVerifyPayment(repo, secret)

	zeros := "0000000000000000000000000000000000000000000000000000000000000000"
	_, err := uc.Execute(context.Background(), VerifyInput{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: zeros,
	})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)

	record := repo.records["order_abc"]
	assert.Equal(t, string(domain.StatusCreated), record.Status)
	assert.Empty(t, record.PaymentID)
}

func TestVerifyPaymentRejectsMissingFields(t *testing.T) {
	uc := NewVerifyPayment(newFakeRepo(), "test_key_secret")

	cases := []VerifyInput{
		{PaymentID: "pay_123", Signature: "sig"},
		{OrderID: "order_abc", Signature: "sig"},
		{OrderID: "order_abc", PaymentID: "pay_123"},
	}
	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	}
}

func TestVerifyPaymentRejectsWhenSecretMissing(t *testing.T) {
	uc := NewVerifyPayment(newFakeRepo(), "")
	_, err := uc.Execute(context.Background(), VerifyInput{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: "sig",
	})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestVerifyPaymentWithNoLocalRecordSucceedsWithoutWrite(t *testing.T) {
	const secret = "test_key_secret"
	uc := NewVerifyPayment(newFakeRepo(), secret)

	record, err := uc.Execute(context.Background(), VerifyInput{
		OrderID:   "order_unknown",
		PaymentID: "pay_123",
		Signature: domain.Signature(secret, "order_unknown", "pay_123"),
	})
	require.NoError(t, err)
	assert.Nil(t, record)
}
