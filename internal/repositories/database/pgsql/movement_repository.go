package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxMovementRepository persists the append-only movement ledger.
type PgxMovementRepository struct {
	pool Pool
}

func newPgxMovementRepository(pool Pool) *PgxMovementRepository {
	return &PgxMovementRepository{pool: pool}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

const movementColumns = `movement_id, ledger_seq, reserve_id, currency, movement_type, amount, balance_before, balance_after,
		reference, exchange_transaction_id, description, notes, movement_date, processed_by, created_at`

func scanMovement(row rowScanner) (domain.CurrencyMovement, error) {
	var m domain.CurrencyMovement
	var currency, movementType string
	err := row.Scan(
		&m.MovementID,
		&m.Sequence,
		&m.ReserveID,
		&currency,
		&movementType,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Reference,
		&m.ExchangeTransactionID,
		&m.Description,
		&m.Notes,
		&m.MovementDate,
		&m.ProcessedBy,
		&m.CreatedAt,
	)
	m.Currency = domain.CurrencyCode(currency)
	m.MovementType = domain.MovementType(movementType)
	return m, err
}

func collectMovements(rows pgx.Rows) ([]domain.CurrencyMovement, error) {
	defer rows.Close()
	var movements []domain.CurrencyMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating movement rows")
	}
	return movements, nil
}

// InsertMovementTx appends a movement inside a transaction.
func (r *PgxMovementRepository) InsertMovementTx(ctx context.Context, tx pgx.Tx, m domain.CurrencyMovement) error {
	query := `
		INSERT INTO currency_movements (movement_id, reserve_id, currency, movement_type, amount, balance_before,
			balance_after, reference, exchange_transaction_id, description, notes, movement_date, processed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.ReserveID,
		string(m.Currency),
		string(m.MovementType),
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Reference,
		m.ExchangeTransactionID,
		m.Description,
		m.Notes,
		m.MovementDate,
		m.ProcessedBy,
		m.CreatedAt,
	)
	return mapPgError(err, "failed to insert movement %s", m.MovementID)
}

// ListMovementsByReserve returns a reserve statement, newest first.
func (r *PgxMovementRepository) ListMovementsByReserve(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM currency_movements WHERE reserve_id = $1`)
	args := []any{reserveID}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, " AND movement_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, " AND movement_date < $%d", len(args))
	}
	sb.WriteString(" ORDER BY movement_date DESC, ledger_seq DESC;")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list movements for reserve %s", reserveID)
	}
	return collectMovements(rows)
}

const movementsByTransactionQuery = `SELECT ` + movementColumns + `
		FROM currency_movements
		WHERE exchange_transaction_id = $1
		ORDER BY ledger_seq;`

// ListMovementsByTransaction returns the legs recorded for an exchange transaction.
func (r *PgxMovementRepository) ListMovementsByTransaction(ctx context.Context, transactionID string) ([]domain.CurrencyMovement, error) {
	rows, err := r.pool.Query(ctx, movementsByTransactionQuery, transactionID)
	if err != nil {
		return nil, mapPgError(err, "failed to list movements for transaction %s", transactionID)
	}
	return collectMovements(rows)
}

// ListMovementsByTransactionTx is ListMovementsByTransaction inside a transaction.
func (r *PgxMovementRepository) ListMovementsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.CurrencyMovement, error) {
	rows, err := tx.Query(ctx, movementsByTransactionQuery, transactionID)
	if err != nil {
		return nil, mapPgError(err, "failed to list movements for transaction %s", transactionID)
	}
	return collectMovements(rows)
}
