package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FingerprintLength is the number of hex characters kept from the content hash.
const FingerprintLength = 16

// ComputeFingerprint derives the deterministic content hash used for
// duplicate detection. It is sensitive to the exact date, the
// whitespace-normalized description and the amount at cent precision: the
// amount is fixed to two decimals before hashing, so values differing only
// beyond the second decimal hash identically. There is no salt or timestamp
// component: identical logical inputs hash identically across process
// restarts, which is what makes cross-batch and cross-session deduplication
// work.
//
// Collisions between two distinct real transactions sharing date,
// description and amount are accepted as a known limitation of the
// low-dimensional input, not engineered around.
func ComputeFingerprint(date, description string, amount decimal.Decimal) string {
	normalized := strings.Join(strings.Fields(strings.TrimSpace(description)), " ")
	input := fmt.Sprintf("%s|%s|%s", date, normalized, amount.StringFixed(2))
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}
