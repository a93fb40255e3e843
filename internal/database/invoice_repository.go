package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digirix/praxis/internal/models"
)

// InvoiceRepo provides data access for invoices.
type InvoiceRepo struct {
	db *sql.DB
}

const invoiceColumns = `id, invoice_number, task_id, service_rate, currency,
	discount_amount, tax_percent, subtotal, tax_amount, total, issued_at,
	created_at, updated_at`

// Create inserts an invoice and returns it with generated fields populated.
func (r *InvoiceRepo) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (invoice_number, task_id, service_rate, currency,
			discount_amount, tax_percent, subtotal, tax_amount, total, issued_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.InvoiceNumber, nullInt(inv.TaskID), inv.ServiceRate, inv.Currency,
		inv.DiscountAmount, inv.TaxPercent, inv.Subtotal, inv.TaxAmount, inv.Total,
		nullTime(inv.IssuedAt),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a single invoice.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int) (*models.Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id,
	)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return inv, err
}

// GetAll retrieves all invoices, newest first.
func (r *InvoiceRepo) GetAll(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+invoiceColumns+" FROM invoices ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// Update rewrites an invoice's billing fields and computed totals.
func (r *InvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices
		 SET invoice_number = ?, task_id = ?, service_rate = ?, currency = ?,
			discount_amount = ?, tax_percent = ?, subtotal = ?, tax_amount = ?,
			total = ?, issued_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		inv.InvoiceNumber, nullInt(inv.TaskID), inv.ServiceRate, inv.Currency,
		inv.DiscountAmount, inv.TaxPercent, inv.Subtotal, inv.TaxAmount, inv.Total,
		nullTime(inv.IssuedAt), inv.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func scanInvoice(row scanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var taskID sql.NullInt64
	var issued sql.NullTime

	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &taskID, &inv.ServiceRate, &inv.Currency,
		&inv.DiscountAmount, &inv.TaxPercent, &inv.Subtotal, &inv.TaxAmount,
		&inv.Total, &issued, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.TaskID = intPtr(taskID)
	inv.IssuedAt = timePtr(issued)
	return inv, nil
}
