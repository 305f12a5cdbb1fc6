package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
	ucpayment "github.com/wheelsup-garage/vehicle-care-api/internal/usecase/payment"
)

type PaymentHandler struct {
	db       *db.Manager
	config   *config.Config
	createUC *ucpayment.CreateOrder
	verifyUC *ucpayment.VerifyPayment
}

func NewPaymentHandler(
	dbm *db.Manager,
	cfg *config.Config,
	createUC *ucpayment.CreateOrder,
	verifyUC *ucpayment.VerifyPayment,
) *PaymentHandler {
	return &PaymentHandler{
		db:       dbm,
		config:   cfg,
		createUC: createUC,
		verifyUC: verifyUC,
	}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

var paymentSortFields = map[string]string{
	"amount":    "amount",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// --------- Handlers ---------

// Config reports whether the processor is usable so clients can toggle the
// payment widget. The key id is public by design; the secret never leaves
// the server.
func (h *PaymentHandler) Config(c *gin.Context) {
	var keyID any
	if h.config.RazorpayKeyID != "" {
		keyID = h.config.RazorpayKeyID
	}
	c.JSON(200, gin.H{
		"enabled": h.config.PaymentsConfigured(),
		"keyId":   keyID,
	})
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if _, ok := requireDB(c, h.db); !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	result, err := h.createUC.Execute(c.Request.Context(), ucpayment.CreateOrderInput{
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		var gwErr *domain.GatewayError
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			httperr.BadRequest(c, "invalid_amount", "Amount is required (in paise)")
		case errors.Is(err, domain.ErrNotConfigured):
			httperr.BadRequest(c, "payments_not_configured", "Razorpay keys are not configured. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
		case errors.As(err, &gwErr):
			httperr.Upstream(c, "order_creation_failed", "Failed to create payment order")
		default:
			httperr.ServiceUnavailable(c)
		}
		return
	}

	httpresp.OK(c, result)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment verification payload")
		return
	}

	if _, ok := requireDB(c, h.db); !ok {
		return
	}

	_, err := h.verifyUC.Execute(c.Request.Context(), ucpayment.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPayload):
			httperr.BadRequest(c, "invalid_payload", "Invalid payment verification payload")
		case errors.Is(err, domain.ErrNotConfigured):
			httperr.BadRequest(c, "payments_not_configured", "Payment verification secret not configured")
		case errors.Is(err, domain.ErrVerificationFailed):
			httperr.BadRequest(c, "verification_failed", "Payment verification failed")
		default:
			httperr.ServiceUnavailable(c)
		}
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}

func (h *PaymentHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, paymentSortFields, "created_at")

	base := gdb.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		base = base.Where("status = ?", status)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	if !q.Paged {
		payments := make([]models.Payment, 0)
		if err := base.Preload("User").Order(q.SortClause()).Find(&payments).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, payments)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	payments := make([]models.Payment, 0)
	if err := base.Preload("User").
		Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&payments).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, payments, total, q.Page, q.Limit, q.PublicSortKey(paymentSortFields), q.Order)
}
