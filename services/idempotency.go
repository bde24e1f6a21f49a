package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// IdempotencyKey derives a stable key from the order-defining fields so a
// retried identical submission never creates a duplicate charge at the
// processor. Changing any field yields a different key.
func IdempotencyKey(email, serviceID string, quantity int, rush bool) string {
	payload := strings.Join([]string{
		normalizeEmail(email),
		serviceID,
		strconv.Itoa(quantity),
		strconv.FormatBool(rush),
	}, "|")

	sum := sha256.Sum256([]byte(payload))
	return "order-" + hex.EncodeToString(sum[:])
}

// EmailHash returns a short hex digest of the customer email, used in the
// rate-limit key and in processor metadata. The raw address never travels
// in metadata.
func EmailHash(email string) string {
	sum := sha256.Sum256([]byte(normalizeEmail(email)))
	return hex.EncodeToString(sum[:8])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
