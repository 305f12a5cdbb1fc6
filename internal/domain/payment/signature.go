package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the hex HMAC-SHA256 over "orderID|paymentID". This is
// the settlement contract of the processor: the client receives this exact
// value after a successful checkout and posts it back for verification.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature fails closed: any empty input rejects. The comparison is
// constant time so mismatch position leaks nothing.
func VerifySignature(secret, orderID, paymentID, provided string) bool {
	if secret == "" || orderID == "" || paymentID == "" || provided == "" {
		return false
	}
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(provided))
}
