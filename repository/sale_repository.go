package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mostrador-pos/checkout"
	"mostrador-pos/models"

	"go.uber.org/zap"
)

// SaleRepository handles database operations for sales
type SaleRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
	loc *time.Location
}

// NewSaleRepository creates a new SaleRepository. Date filters of List are
// interpreted in loc (the shop's time zone); nil means time.Local.
func NewSaleRepository(db *sql.DB, logger *zap.Logger, loc *time.Location) *SaleRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SaleRepository{db: db, log: sugar(logger), loc: loc}
}

// Ensure SaleRepository implements SaleRepositoryInterface
var _ SaleRepositoryInterface = (*SaleRepository)(nil)

var _ checkout.SaleRecorder = (*SaleRepository)(nil)

// Record stores a finished sale, deducts its stock and books the income in
// finance_transactions. All operations are performed atomically in a single
// transaction; a product without enough stock aborts the whole sale with
// ErrInsufficientStock.
func (r *SaleRepository) Record(ctx context.Context, params *models.RecordSaleParams) (*models.SaleDetail, error) {
	snap := params.Snapshot
	r.log.Infof("📦 Record: session=%s lines=%d total=%d", params.SessionID, len(snap.Items), snap.Totals.Total)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("❌ Record: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock each product once and deduct what the cart sells of it
	for _, need := range quantitiesByProduct(params) {
		var stockTotal, stockReserved int
		var isActive bool
		queryItem := `SELECT stock_total, stock_reserved, is_active FROM items WHERE id = $1 FOR UPDATE`
		err = tx.QueryRowContext(ctx, queryItem, need.productID).Scan(&stockTotal, &stockReserved, &isActive)
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Infof("❌ Record: product %d vanished", need.productID)
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, need.productID)
		}
		if err != nil {
			r.log.Errorf("❌ Record: Error fetching item stock: %v", err)
			return nil, fmt.Errorf("failed to fetch item stock: %w", err)
		}

		available := stockTotal - stockReserved
		if !isActive || available < need.qty {
			r.log.Infof("❌ Record: Insufficient stock for product %d: available=%d, required=%d", need.productID, available, need.qty)
			return nil, fmt.Errorf("%w: product %d has %d, sale needs %d", ErrInsufficientStock, need.productID, available, need.qty)
		}

		queryUpdateStock := `UPDATE items SET stock_total = stock_total - $1 WHERE id = $2`
		if _, err = tx.ExecContext(ctx, queryUpdateStock, need.qty, need.productID); err != nil {
			r.log.Errorf("❌ Record: Error updating stock for item_id=%d: %v", need.productID, err)
			return nil, fmt.Errorf("failed to deduct stock: %w", err)
		}
	}

	sale := models.SaleDetail{Sale: models.Sale{
		SessionID:    params.SessionID,
		Cashier:      params.Cashier,
		CustomerName: params.CustomerName,
		SoldAt:       snap.TakenAt,
		Currency:     snap.Currency.Code,
		Subtotal:     snap.Totals.Subtotal,
		LineDiscount: snap.Totals.LineDiscount,
		CartDiscount: snap.Totals.CartDiscount,
		Tax:          snap.Totals.Tax,
		Total:        snap.Totals.Total,
		AmountPaid:   params.AmountPaid,
		ChangeDue:    params.ChangeDue,
		Status:       "paid",
		Notes:        params.Notes,
	}}

	queryInsertSale := `
		INSERT INTO sales (session_id, cashier, customer_name, sold_at, currency, subtotal, line_discount, cart_discount, tax, total, amount_paid, change_due, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, queryInsertSale,
		sale.SessionID,
		sale.Cashier,
		sql.NullString{String: sale.CustomerName, Valid: sale.CustomerName != ""},
		sale.SoldAt,
		sale.Currency,
		sale.Subtotal,
		sale.LineDiscount,
		sale.CartDiscount,
		sale.Tax,
		sale.Total,
		sale.AmountPaid,
		sale.ChangeDue,
		sale.Status,
		sql.NullString{String: sale.Notes, Valid: sale.Notes != ""},
	).Scan(&sale.ID, &sale.CreatedAt)
	if isUniqueViolation(err) {
		r.log.Infof("❌ Record: session %s was already sold", params.SessionID)
		return nil, fmt.Errorf("%w: %s", ErrSaleAlreadyRecorded, params.SessionID)
	}
	if err != nil {
		r.log.Errorf("❌ Record: Error inserting sale: %v", err)
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	queryInsertLine := `
		INSERT INTO sale_lines (sale_id, item_id, name, sku, variant, unit_price, qty, line_discount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	for _, item := range snap.Items {
		line := models.SaleLine{
			ProductID:    item.ProductID,
			Name:         item.Name,
			SKU:          item.SKU,
			Variant:      item.Variant,
			UnitPrice:    item.UnitPrice,
			Qty:          item.Quantity,
			LineDiscount: item.LineDiscount,
			LineTotal:    item.LineSubtotal(),
		}
		err = tx.QueryRowContext(ctx, queryInsertLine,
			sale.ID, line.ProductID, line.Name, line.SKU, line.Variant,
			line.UnitPrice, line.Qty, line.LineDiscount, line.LineTotal,
		).Scan(&line.ID)
		if err != nil {
			r.log.Errorf("❌ Record: Error inserting line for item_id=%d: %v", item.ProductID, err)
			return nil, fmt.Errorf("failed to insert sale line: %w", err)
		}
		sale.Lines = append(sale.Lines, line)
	}

	queryInsertPayment := `INSERT INTO sale_payments (sale_id, method, destination, amount) VALUES ($1, $2, $3, $4)`
	for _, p := range params.Payments {
		if _, err = tx.ExecContext(ctx, queryInsertPayment, sale.ID, p.Method, p.Destination, p.Amount); err != nil {
			r.log.Errorf("❌ Record: Error inserting payment: %v", err)
			return nil, fmt.Errorf("failed to insert sale payment: %w", err)
		}
		sale.Payments = append(sale.Payments, p)
	}

	for _, entry := range ledgerEntries(params.Payments, params.ChangeDue) {
		_, err = insertLedgerRow(ctx, tx, ledgerRow{
			Type:        ledgerIncome,
			Source:      ledgerSourceSale,
			SourceID:    sale.ID,
			OccurredAt:  sale.SoldAt,
			Amount:      entry.Amount,
			Destination: entry.Destination,
			Category:    ledgerCategorySale,
			Notes:       sale.Notes,
		})
		if err != nil {
			r.log.Errorf("❌ Record: Error booking %s income: %v", entry.Method, err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		r.log.Errorf("❌ Record: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Infof("✅ Record: sale id=%d total=%d", sale.ID, sale.Total)
	return &sale, nil
}

type productQty struct {
	productID int64
	qty       int
}

// quantitiesByProduct sums the sold quantity per product in cart order.
// A product may appear on several lines (e.g. one discounted, one not).
func quantitiesByProduct(params *models.RecordSaleParams) []productQty {
	var out []productQty
	index := make(map[int64]int)
	for _, item := range params.Snapshot.Items {
		if i, ok := index[item.ProductID]; ok {
			out[i].qty += item.Quantity
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, productQty{productID: item.ProductID, qty: item.Quantity})
	}
	return out
}

// ledgerEntries turns tenders into income rows. Change handed back comes out
// of the cash tenders, so the ledger records what stayed in each destination.
func ledgerEntries(payments []models.SalePayment, change int64) []models.SalePayment {
	entries := make([]models.SalePayment, 0, len(payments))
	for _, p := range payments {
		if p.Method == checkout.MethodCash && change > 0 {
			taken := min(change, p.Amount)
			p.Amount -= taken
			change -= taken
		}
		if p.Amount > 0 {
			entries = append(entries, p)
		}
	}
	return entries
}

// GetByID retrieves a sale by ID with its lines and payments
func (r *SaleRepository) GetByID(ctx context.Context, saleID int64) (*models.SaleDetail, error) {
	r.log.Infof("📦 GetByID: Fetching sale id=%d", saleID)

	querySale := `
		SELECT id, session_id, cashier, customer_name, sold_at, currency, subtotal, line_discount, cart_discount, tax, total, amount_paid, change_due, status, notes, created_at
		FROM sales
		WHERE id = $1
	`

	var sale models.SaleDetail
	var customerName, notes sql.NullString
	err := r.db.QueryRowContext(ctx, querySale, saleID).Scan(
		&sale.ID,
		&sale.SessionID,
		&sale.Cashier,
		&customerName,
		&sale.SoldAt,
		&sale.Currency,
		&sale.Subtotal,
		&sale.LineDiscount,
		&sale.CartDiscount,
		&sale.Tax,
		&sale.Total,
		&sale.AmountPaid,
		&sale.ChangeDue,
		&sale.Status,
		&notes,
		&sale.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Infof("❌ GetByID: Sale not found: id=%d", saleID)
		return nil, ErrSaleNotFound
	}
	if err != nil {
		r.log.Errorf("❌ GetByID: Error fetching sale: %v", err)
		return nil, fmt.Errorf("failed to fetch sale: %w", err)
	}
	sale.CustomerName = customerName.String
	sale.Notes = notes.String

	queryLines := `
		SELECT id, item_id, name, sku, variant, unit_price, qty, line_discount, line_total
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, queryLines, saleID)
	if err != nil {
		r.log.Errorf("❌ GetByID: Error fetching lines: %v", err)
		return nil, fmt.Errorf("failed to fetch sale lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.SaleLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Name, &l.SKU, &l.Variant, &l.UnitPrice, &l.Qty, &l.LineDiscount, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		sale.Lines = append(sale.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sale lines: %w", err)
	}

	queryPayments := `SELECT method, destination, amount FROM sale_payments WHERE sale_id = $1 ORDER BY id`
	payRows, err := r.db.QueryContext(ctx, queryPayments, saleID)
	if err != nil {
		r.log.Errorf("❌ GetByID: Error fetching payments: %v", err)
		return nil, fmt.Errorf("failed to fetch sale payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var p models.SalePayment
		if err := payRows.Scan(&p.Method, &p.Destination, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan sale payment: %w", err)
		}
		sale.Payments = append(sale.Payments, p)
	}
	if err := payRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sale payments: %w", err)
	}

	r.log.Infof("✅ GetByID: Successfully fetched sale id=%d", saleID)
	return &sale, nil
}

// List retrieves sales filtered by date range (YYYY-MM-DD, both inclusive)
func (r *SaleRepository) List(ctx context.Context, from, to *string) ([]models.SaleListItem, error) {
	r.log.Infof("📦 List: Fetching sales (from=%v, to=%v)", deref(from), deref(to))

	query := `
		SELECT id, sold_at, cashier, customer_name, total, amount_paid
		FROM sales
	`
	var args []interface{}
	argIndex := 1

	if from != nil && *from != "" {
		fromDate, err := time.ParseInLocation("2006-01-02", *from, r.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: from %q", ErrInvalidDate, *from)
		}
		query += fmt.Sprintf(" WHERE sold_at >= $%d", argIndex)
		args = append(args, fromDate)
		argIndex++
	}

	if to != nil && *to != "" {
		toDate, err := time.ParseInLocation("2006-01-02", *to, r.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: to %q", ErrInvalidDate, *to)
		}
		if argIndex == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}
		// exclusive upper bound at the start of the next day
		query += fmt.Sprintf(" sold_at < $%d", argIndex)
		args = append(args, toDate.AddDate(0, 0, 1))
	}

	query += " ORDER BY sold_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("❌ List: Error fetching sales: %v", err)
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	defer rows.Close()

	sales := []models.SaleListItem{}
	for rows.Next() {
		var sale models.SaleListItem
		var customerName sql.NullString
		if err := rows.Scan(&sale.ID, &sale.SoldAt, &sale.Cashier, &customerName, &sale.Total, &sale.AmountPaid); err != nil {
			r.log.Errorf("❌ List: Error scanning sale: %v", err)
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.CustomerName = customerName.String
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("❌ List: Error iterating sales: %v", err)
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	r.log.Infof("✅ List: Successfully fetched %d sales", len(sales))
	return sales, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
