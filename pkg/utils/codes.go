package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateReferenceNo generates a procurement reference number. The format is
// two or three upper-case letters, a hyphen, then six digits.
func GenerateReferenceNo(prefix string) string {
	return fmt.Sprintf("%s-%06d", strings.ToUpper(prefix), uuid.New().ID()%1000000)
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}
