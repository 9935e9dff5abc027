package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment.completed"}`)
	secret := "whsec_test"

	assert.NoError(t, VerifySignature(payload, sign(payload, secret), secret))
}

func TestVerifySignatureMismatch(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"

	err := VerifySignature(payload, sign(payload, "other_secret"), secret)
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))

	// Signing a different payload must not verify either.
	err = VerifySignature(payload, sign([]byte(`{"id":"evt_2"}`), secret), secret)
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestVerifySignatureMissing(t *testing.T) {
	err := VerifySignature([]byte("{}"), "", "whsec_test")
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestVerifySignatureUnconfiguredSecret(t *testing.T) {
	err := VerifySignature([]byte("{}"), "deadbeef", "")
	require.Error(t, err)
	assert.True(t, ierr.IsSystem(err))
}
