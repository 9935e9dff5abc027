package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
)

// VerifySignature checks the hex-encoded HMAC-SHA256 signature of a webhook
// payload. This is the entire authenticity contract with the payment
// collaborator; the engine does not validate payments beyond it.
func VerifySignature(payload []byte, signature, secret string) error {
	if secret == "" {
		return ierr.NewError("payments webhook secret is not configured").
			WithHint("Configure the payments webhook secret").
			Mark(ierr.ErrSystem)
	}
	if signature == "" {
		return ierr.NewError("missing webhook signature").
			WithHint("Webhook signature header is required").
			Mark(ierr.ErrPermissionDenied)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ierr.NewError("webhook signature mismatch").
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
