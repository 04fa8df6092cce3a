package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mostrador-pos/models"

	"go.uber.org/zap"
)

const (
	ledgerIncome = "income"

	// ledgerSourceSale marks rows booked by SaleRepository.Record.
	ledgerSourceSale   = "sale"
	ledgerCategorySale = "venta"
)

// FinanceTransactionRepository books manual entries in the cash ledger
type FinanceTransactionRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

// NewFinanceTransactionRepository creates a new FinanceTransactionRepository
func NewFinanceTransactionRepository(db *sql.DB, logger *zap.Logger) *FinanceTransactionRepository {
	return &FinanceTransactionRepository{db: db, log: sugar(logger), now: time.Now}
}

// Ensure FinanceTransactionRepository implements FinanceTransactionRepositoryInterface
var _ FinanceTransactionRepositoryInterface = (*FinanceTransactionRepository)(nil)

// Create books a manual ledger entry (a supplier payment, a repair deposit,
// cash taken out of the drawer...). The request is validated by its tags at
// the HTTP boundary. Rows with source "sale" belong to recorded sales and
// cannot be booked by hand.
func (r *FinanceTransactionRepository) Create(ctx context.Context, req *models.CreateFinanceTransactionRequest) (*models.FinanceTransaction, error) {
	r.log.Infof("💰 CreateFinanceTransaction: %s of %d to %s", req.Type, req.Amount, req.Destination)

	if req.Source == ledgerSourceSale {
		return nil, fmt.Errorf("%w: source %q is reserved for recorded sales", ErrInvalidTransaction, ledgerSourceSale)
	}

	row := ledgerRow{
		Type:        req.Type,
		Source:      req.Source,
		SourceID:    req.SourceID,
		OccurredAt:  r.now(),
		Amount:      req.Amount,
		Destination: req.Destination,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("%w: occurredAt %q is not RFC3339", ErrInvalidTransaction, req.OccurredAt)
		}
		row.OccurredAt = t
	}

	transaction, err := insertLedgerRow(ctx, r.db, row)
	if err != nil {
		r.log.Errorf("❌ CreateFinanceTransaction: %v", err)
		return nil, err
	}

	r.log.Infof("✅ CreateFinanceTransaction: id=%d", transaction.ID)
	return transaction, nil
}

// ledgerRow is one line of finance_transactions.
type ledgerRow struct {
	Type        string
	Source      string
	SourceID    int64
	OccurredAt  time.Time
	Amount      int64
	Destination string
	Category    string
	Notes       string
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertLedgerRow(ctx context.Context, q rowQuerier, row ledgerRow) (*models.FinanceTransaction, error) {
	const query = `
		INSERT INTO finance_transactions (type, source, source_id, occurred_at, amount, destination, category, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	t := models.FinanceTransaction{
		Type:        row.Type,
		Source:      row.Source,
		SourceID:    row.SourceID,
		OccurredAt:  row.OccurredAt,
		Amount:      row.Amount,
		Destination: row.Destination,
		Category:    row.Category,
		Notes:       row.Notes,
	}
	err := q.QueryRowContext(ctx, query,
		row.Type,
		row.Source,
		row.SourceID,
		row.OccurredAt,
		row.Amount,
		row.Destination,
		sql.NullString{String: row.Category, Valid: row.Category != ""},
		sql.NullString{String: row.Notes, Valid: row.Notes != ""},
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert finance transaction: %w", err)
	}
	return &t, nil
}
