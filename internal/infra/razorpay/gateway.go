package razorpay

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	rzp "github.com/razorpay/razorpay-go"

	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
)

// Gateway adapts the Razorpay SDK to the domain gateway interface.
type Gateway struct {
	client *rzp.Client
}

var _ domain.Gateway = (*Gateway)(nil)

func New(keyID, keySecret string) *Gateway {
	return &Gateway{client: rzp.NewClient(keyID, keySecret)}
}

// CreateOrder mints an order on the processor. The SDK is not
// context-aware; ctx is accepted for interface symmetry.
func (g *Gateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*domain.Order, error) {
	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	res, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create razorpay order")
	}

	order := &domain.Order{
		ID:       asString(res["id"]),
		Amount:   asInt64(res["amount"]),
		Currency: asString(res["currency"]),
		Receipt:  asString(res["receipt"]),
	}
	if notes, ok := res["notes"].(map[string]any); ok {
		order.Notes = notes
	}

	if order.ID == "" {
		return nil, errors.New("razorpay order response missing id")
	}
	return order, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
