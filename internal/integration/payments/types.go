package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Webhook event types emitted by the payment collaborator.
const (
	EventPaymentCompleted = "payment.completed"
)

// Payer identifies who paid, snapshotted onto the entitlement for audit.
type Payer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	ContactID   string `json:"contact_id"`
}

// PaymentData is the payload of a payment event.
type PaymentData struct {
	TenantID     string          `json:"tenant_id"`
	Amount       decimal.Decimal `json:"amount"`
	DurationDays int             `json:"duration_days"`
	Reference    string          `json:"reference"`
	Payer        Payer           `json:"payer"`
}

// WebhookEvent is the envelope the payment collaborator posts to us.
type WebhookEvent struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	Data      PaymentData `json:"data"`
}
