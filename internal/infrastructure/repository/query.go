package repository

import "strings"

// Sortable columns per entity. Client-supplied sort keys resolve through
// these fixed maps only; anything not listed falls back to the entity's
// default ordering, so a sort field can never reach the SQL text unchecked.
var (
	orderSortColumns = map[string]string{
		"order_number": "order_number",
		"order_date":   "order_date",
		"sub_total":    "sub_total",
		"total":        "total",
		"status":       "status",
		"created_at":   "created_at",
	}

	paymentSortColumns = map[string]string{
		"amount":       "amount",
		"payment_date": "payment_date",
		"status":       "status",
		"created_at":   "created_at",
	}

	procurementSortColumns = map[string]string{
		"reference_no":     "reference_no",
		"procurement_date": "procurement_date",
		"total_amount":     "total_amount",
		"created_at":       "created_at",
	}

	productSortColumns = map[string]string{
		"name":       "name",
		"code":       "code",
		"unit_price": "unit_price",
		"in_stock":   "in_stock",
		"created_at": "created_at",
	}

	partnerSortColumns = map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}

	discountSortColumns = map[string]string{
		"discount_code": "discount_code",
		"percentage":    "percentage",
		"start_date":    "start_date",
		"end_date":      "end_date",
		"created_at":    "created_at",
	}
)

// resolveSort maps a requested sort field and direction onto an ORDER BY
// fragment using the given allow-list. Unknown fields and directions fall
// back silently to the provided default.
func resolveSort(allowed map[string]string, sortBy, direction, fallback string) string {
	column, ok := allowed[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return fallback
	}

	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(direction), "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}
