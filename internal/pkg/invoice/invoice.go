// Package invoice generates the human-traceable invoice numbers carried
// by ledger transactions.
package invoice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Payment returns a payment invoice number of the form
// INV<DDMMYYYY>-<3-digit suffix>. The suffix is random; uniqueness is
// enforced by the transactions table, and callers regenerate on
// conflict.
func Payment(now time.Time) string {
	return fmt.Sprintf("INV%s-%03d", now.Format("02012006"), suffix())
}

// TopUp returns a top-up invoice number of the form
// TOPUP-<userID>-<unix millis>.
func TopUp(userID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("TOPUP-%s-%d", userID, now.UnixMilli())
}

func suffix() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a time-derived suffix rather than panic.
		return time.Now().UnixNano() % 1000
	}
	return n.Int64()
}
