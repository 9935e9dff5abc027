package types

const (
	HeaderRequestID        = "X-Request-ID"
	HeaderTenantID         = "X-Tenant-ID"
	HeaderWebhookSignature = "X-Webhook-Signature"
)
