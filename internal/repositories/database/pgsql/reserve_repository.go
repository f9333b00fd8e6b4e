package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxReserveRepository persists currency reserves.
type PgxReserveRepository struct {
	pool Pool
}

// newPgxReserveRepository creates a new repository for reserve data.
func newPgxReserveRepository(pool Pool) *PgxReserveRepository {
	return &PgxReserveRepository{pool: pool}
}

var _ portsrepo.ReserveRepositoryFacade = (*PgxReserveRepository)(nil)

const reserveColumns = `reserve_id, branch_id, branch_name, currency, current_balance, minimum_balance, maximum_balance,
		daily_limit, daily_used, daily_usage_reset_at, last_restock_date, last_deposit_date, is_active, notes,
		created_at, created_by, last_updated_at, last_updated_by`

func scanReserve(row rowScanner) (domain.CurrencyReserve, error) {
	var r domain.CurrencyReserve
	var currency string
	err := row.Scan(
		&r.ReserveID,
		&r.BranchID,
		&r.BranchName,
		&currency,
		&r.CurrentBalance,
		&r.MinimumBalance,
		&r.MaximumBalance,
		&r.DailyLimit,
		&r.DailyUsed,
		&r.DailyUsageResetAt,
		&r.LastRestockDate,
		&r.LastDepositDate,
		&r.IsActive,
		&r.Notes,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	r.Currency = domain.CurrencyCode(currency)
	return r, err
}

func (r *PgxReserveRepository) findOne(ctx context.Context, query string, what string, args ...any) (*domain.CurrencyReserve, error) {
	reserve, err := scanReserve(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, what)
		}
		return nil, mapPgError(err, "failed to find reserve %s", what)
	}
	return &reserve, nil
}

// FindReserveByID retrieves a reserve by its ID.
func (r *PgxReserveRepository) FindReserveByID(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM currency_reserves WHERE reserve_id = $1;`
	return r.findOne(ctx, query, reserveID, reserveID)
}

// FindReserveByBranchAndCurrency retrieves the reserve a branch holds in one currency.
func (r *PgxReserveRepository) FindReserveByBranchAndCurrency(ctx context.Context, branchID string, currency domain.CurrencyCode) (*domain.CurrencyReserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM currency_reserves WHERE branch_id = $1 AND currency = $2;`
	return r.findOne(ctx, query, fmt.Sprintf("%s/%s", branchID, currency), branchID, string(currency))
}

// ListReservesByBranch retrieves all reserves of a branch ordered by currency.
func (r *PgxReserveRepository) ListReservesByBranch(ctx context.Context, branchID string) ([]domain.CurrencyReserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM currency_reserves WHERE branch_id = $1 ORDER BY currency;`
	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, mapPgError(err, "failed to list reserves for branch %s", branchID)
	}
	defer rows.Close()

	reserves := make([]domain.CurrencyReserve, 0, len(domain.SupportedCurrencies))
	for rows.Next() {
		reserve, err := scanReserve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reserve row: %w", err)
		}
		reserves = append(reserves, reserve)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating reserve rows")
	}
	return reserves, nil
}

// CreateReserveIfAbsent inserts a reserve; a concurrent creation for the same branch and currency wins silently.
func (r *PgxReserveRepository) CreateReserveIfAbsent(ctx context.Context, reserve domain.CurrencyReserve) error {
	query := `
		INSERT INTO currency_reserves (reserve_id, branch_id, branch_name, currency, current_balance, minimum_balance,
			maximum_balance, daily_limit, daily_used, is_active, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (branch_id, currency) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, query,
		reserve.ReserveID,
		reserve.BranchID,
		reserve.BranchName,
		string(reserve.Currency),
		reserve.CurrentBalance,
		reserve.MinimumBalance,
		reserve.MaximumBalance,
		reserve.DailyLimit,
		reserve.DailyUsed,
		reserve.IsActive,
		reserve.Notes,
		reserve.CreatedAt,
		reserve.CreatedBy,
		reserve.LastUpdatedAt,
		reserve.LastUpdatedBy,
	)
	return mapPgError(err, "failed to create reserve for branch %s currency %s", reserve.BranchID, reserve.Currency)
}

// UpdateReserveLimits persists new limits and notes.
func (r *PgxReserveRepository) UpdateReserveLimits(ctx context.Context, reserve domain.CurrencyReserve) error {
	query := `
		UPDATE currency_reserves
		SET minimum_balance = $1, maximum_balance = $2, daily_limit = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE reserve_id = $7;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		reserve.MinimumBalance,
		reserve.MaximumBalance,
		reserve.DailyLimit,
		reserve.Notes,
		reserve.LastUpdatedAt,
		reserve.LastUpdatedBy,
		reserve.ReserveID,
	)
	if err != nil {
		return mapPgError(err, "failed to update limits of reserve %s", reserve.ReserveID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserve.ReserveID)
	}
	return nil
}

// ResetDailyUsage zeroes the daily used counter.
func (r *PgxReserveRepository) ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string, now time.Time) error {
	query := `
		UPDATE currency_reserves
		SET daily_used = 0, daily_usage_reset_at = $1, last_updated_at = $2, last_updated_by = $3
		WHERE reserve_id = $4;
	`
	cmdTag, err := r.pool.Exec(ctx, query, asOf, now, userID, reserveID)
	if err != nil {
		return mapPgError(err, "failed to reset daily usage of reserve %s", reserveID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserveID)
	}
	return nil
}

// DeactivateReserve marks a reserve as inactive. Reserves are never deleted.
func (r *PgxReserveRepository) DeactivateReserve(ctx context.Context, reserveID string, userID string, now time.Time) error {
	query := `
		UPDATE currency_reserves
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE reserve_id = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, userID, reserveID)
	if err != nil {
		return mapPgError(err, "failed to deactivate reserve %s", reserveID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserveID)
	}
	return nil
}

// FindReservesForUpdate selects reserves and locks them in ascending id order within a transaction.
func (r *PgxReserveRepository) FindReservesForUpdate(ctx context.Context, tx pgx.Tx, reserveIDs []string) (map[string]domain.CurrencyReserve, error) {
	if len(reserveIDs) == 0 {
		return map[string]domain.CurrencyReserve{}, nil
	}
	ids := append([]string(nil), reserveIDs...)
	sort.Strings(ids)

	query := `SELECT ` + reserveColumns + `
		FROM currency_reserves
		WHERE reserve_id = ANY($1)
		ORDER BY reserve_id
		FOR UPDATE;`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, mapPgError(err, "failed to lock reserves")
	}
	defer rows.Close()

	reserves := make(map[string]domain.CurrencyReserve, len(ids))
	for rows.Next() {
		reserve, err := scanReserve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked reserve row: %w", err)
		}
		reserves[reserve.ReserveID] = reserve
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "failed to lock reserves")
	}
	return reserves, nil
}

// UpdateReserveBalanceTx persists the fields touched by a balance change.
func (r *PgxReserveRepository) UpdateReserveBalanceTx(ctx context.Context, tx pgx.Tx, reserve domain.CurrencyReserve) error {
	query := `
		UPDATE currency_reserves
		SET current_balance = $1, daily_used = $2, last_restock_date = $3, last_deposit_date = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE reserve_id = $7;
	`
	cmdTag, err := tx.Exec(ctx, query,
		reserve.CurrentBalance,
		reserve.DailyUsed,
		reserve.LastRestockDate,
		reserve.LastDepositDate,
		reserve.LastUpdatedAt,
		reserve.LastUpdatedBy,
		reserve.ReserveID,
	)
	if err != nil {
		return mapPgError(err, "failed to update balance of reserve %s", reserve.ReserveID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserve.ReserveID)
	}
	return nil
}
