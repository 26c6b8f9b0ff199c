package payments

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PaymentReference derives a stable, opaque reference for a session payment.
// The same session and plate always produce the same reference, which lets
// retried stop requests reuse the original payment row.
func PaymentReference(sessionID int64, licensePlate string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d-%s", sessionID, licensePlate)))
	return hex.EncodeToString(sum[:])
}

// ValidationReference generates a one-off reference for a gateway interaction.
func ValidationReference() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
