package invoice

import (
	"github.com/digirix/praxis/internal/models"
)

func invoiceJSON(inv *models.Invoice) map[string]any {
	out := map[string]any{
		"id":         inv.ID,
		"number":     inv.InvoiceNumber,
		"currency":   inv.Currency,
		"rate":       inv.ServiceRate,
		"discount":   inv.DiscountAmount,
		"tax":        inv.TaxPercent,
		"subtotal":   inv.Subtotal,
		"tax_amount": inv.TaxAmount,
		"total":      inv.Total,
		"created_at": inv.CreatedAt,
	}
	if inv.TaskID != nil {
		out["task_id"] = *inv.TaskID
	}
	if inv.IssuedAt != nil {
		out["issued_at"] = inv.IssuedAt
	}
	return out
}
