package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxExchangeRepository persists exchange transactions and their daily numbering.
type PgxExchangeRepository struct {
	pool Pool
}

func newPgxExchangeRepository(pool Pool) *PgxExchangeRepository {
	return &PgxExchangeRepository{pool: pool}
}

var _ portsrepo.ExchangeTransactionRepositoryFacade = (*PgxExchangeRepository)(nil)

const exchangeColumns = `transaction_id, transaction_number, branch_id, branch_name, exchange_rate_id, direction,
		from_currency, to_currency, from_amount, to_amount, applied_rate, commission_rate, commission_amount, net_amount,
		customer_name, customer_document, customer_phone, status, transaction_date, processed_by, notes,
		receipt_number, receipt_printed, idempotency_key, reversed, reversed_at, reversed_by, reversal_reason,
		created_at, created_by, last_updated_at, last_updated_by`

func scanExchange(row rowScanner) (domain.ExchangeTransaction, error) {
	var t domain.ExchangeTransaction
	var direction, from, to, status string
	err := row.Scan(
		&t.TransactionID,
		&t.TransactionNumber,
		&t.BranchID,
		&t.BranchName,
		&t.ExchangeRateID,
		&direction,
		&from,
		&to,
		&t.FromAmount,
		&t.ToAmount,
		&t.AppliedRate,
		&t.CommissionRate,
		&t.CommissionAmount,
		&t.NetAmount,
		&t.CustomerName,
		&t.CustomerDocument,
		&t.CustomerPhone,
		&status,
		&t.TransactionDate,
		&t.ProcessedBy,
		&t.Notes,
		&t.ReceiptNumber,
		&t.ReceiptPrinted,
		&t.IdempotencyKey,
		&t.Reversed,
		&t.ReversedAt,
		&t.ReversedBy,
		&t.ReversalReason,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	t.Direction = domain.ExchangeDirection(direction)
	t.FromCurrency = domain.CurrencyCode(from)
	t.ToCurrency = domain.CurrencyCode(to)
	t.Status = domain.ExchangeStatus(status)
	return t, err
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, what)
	}
	return mapPgError(err, "failed to find exchange transaction %s", what)
}

// FindExchangeTransactionByID retrieves a transaction by its ID.
func (r *PgxExchangeRepository) FindExchangeTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchange_transactions WHERE transaction_id = $1;`
	t, err := scanExchange(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, transactionID)
	}
	return &t, nil
}

// FindExchangeTransactionByIdempotencyKey retrieves the transaction a branch created with the key.
func (r *PgxExchangeRepository) FindExchangeTransactionByIdempotencyKey(ctx context.Context, branchID, key string) (*domain.ExchangeTransaction, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchange_transactions WHERE branch_id = $1 AND idempotency_key = $2;`
	t, err := scanExchange(r.pool.QueryRow(ctx, query, branchID, key))
	if err != nil {
		return nil, notFoundOr(err, "with idempotency key "+key)
	}
	return &t, nil
}

// FindExchangeTransactionForUpdate selects and locks a transaction row.
func (r *PgxExchangeRepository) FindExchangeTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.ExchangeTransaction, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchange_transactions WHERE transaction_id = $1 FOR UPDATE;`
	t, err := scanExchange(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, transactionID)
	}
	return &t, nil
}

// ListExchangeTransactions returns transactions matching the filter, newest first.
func (r *PgxExchangeRepository) ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + exchangeColumns + ` FROM exchange_transactions WHERE 1 = 1`)
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}
	if filter.BranchID != "" {
		add("branch_id = $%d", filter.BranchID)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.Direction != "" {
		add("direction = $%d", string(filter.Direction))
	}
	if filter.From != nil {
		add("transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("transaction_date < $%d", *filter.To)
	}
	sb.WriteString(" ORDER BY transaction_date DESC, transaction_number DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list exchange transactions")
	}
	defer rows.Close()

	var txns []domain.ExchangeTransaction
	for rows.Next() {
		t, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating exchange transaction rows")
	}
	return txns, nil
}

// MarkReceiptPrinted flags the receipt of a transaction as printed.
func (r *PgxExchangeRepository) MarkReceiptPrinted(ctx context.Context, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE exchange_transactions
		SET receipt_printed = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE transaction_id = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, userID, transactionID)
	if err != nil {
		return mapPgError(err, "failed to mark receipt printed for %s", transactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// NextDailySequenceTx increments and returns the branch's counter for the day.
// The counter row stays locked until the surrounding transaction ends, so numbers are gap-free per commit.
func (r *PgxExchangeRepository) NextDailySequenceTx(ctx context.Context, tx pgx.Tx, branchID string, day time.Time) (int64, error) {
	query := `
		INSERT INTO exchange_daily_sequences (branch_id, business_day, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (branch_id, business_day)
		DO UPDATE SET last_value = exchange_daily_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, branchID, day.Format("2006-01-02")).Scan(&next); err != nil {
		return 0, mapPgError(err, "failed to allocate transaction number for branch %s", branchID)
	}
	return next, nil
}

// InsertExchangeTransactionTx inserts a new transaction.
func (r *PgxExchangeRepository) InsertExchangeTransactionTx(ctx context.Context, tx pgx.Tx, t domain.ExchangeTransaction) error {
	query := `
		INSERT INTO exchange_transactions (` + exchangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32);
	`
	_, err := tx.Exec(ctx, query,
		t.TransactionID,
		t.TransactionNumber,
		t.BranchID,
		t.BranchName,
		t.ExchangeRateID,
		string(t.Direction),
		string(t.FromCurrency),
		string(t.ToCurrency),
		t.FromAmount,
		t.ToAmount,
		t.AppliedRate,
		t.CommissionRate,
		t.CommissionAmount,
		t.NetAmount,
		t.CustomerName,
		t.CustomerDocument,
		t.CustomerPhone,
		string(t.Status),
		t.TransactionDate,
		t.ProcessedBy,
		t.Notes,
		t.ReceiptNumber,
		t.ReceiptPrinted,
		t.IdempotencyKey,
		t.Reversed,
		t.ReversedAt,
		t.ReversedBy,
		t.ReversalReason,
		t.CreatedAt,
		t.CreatedBy,
		t.LastUpdatedAt,
		t.LastUpdatedBy,
	)
	return mapPgError(err, "failed to insert exchange transaction %s", t.TransactionNumber)
}

// UpdateExchangeTransactionTx persists status, notes and reversal fields.
func (r *PgxExchangeRepository) UpdateExchangeTransactionTx(ctx context.Context, tx pgx.Tx, t domain.ExchangeTransaction) error {
	query := `
		UPDATE exchange_transactions
		SET status = $1, notes = $2, reversed = $3, reversed_at = $4, reversed_by = $5, reversal_reason = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $9;
	`
	cmdTag, err := tx.Exec(ctx, query,
		string(t.Status),
		t.Notes,
		t.Reversed,
		t.ReversedAt,
		t.ReversedBy,
		t.ReversalReason,
		t.LastUpdatedAt,
		t.LastUpdatedBy,
		t.TransactionID,
	)
	if err != nil {
		return mapPgError(err, "failed to update exchange transaction %s", t.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, t.TransactionID)
	}
	return nil
}
