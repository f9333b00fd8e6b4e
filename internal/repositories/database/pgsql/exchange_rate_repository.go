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

// PgxExchangeRateRepository persists published exchange rates.
type PgxExchangeRateRepository struct {
	pool Pool
}

func newPgxExchangeRateRepository(pool Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{pool: pool}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const rateColumns = `exchange_rate_id, base_currency, target_currency, buying_rate, selling_rate, effective_date,
		expiry_date, update_method, is_active, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanRate(row rowScanner) (domain.ExchangeRate, error) {
	var r domain.ExchangeRate
	var base, target, method string
	err := row.Scan(
		&r.ExchangeRateID,
		&base,
		&target,
		&r.BuyingRate,
		&r.SellingRate,
		&r.EffectiveDate,
		&r.ExpiryDate,
		&method,
		&r.IsActive,
		&r.Notes,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	r.BaseCurrency = domain.CurrencyCode(base)
	r.TargetCurrency = domain.CurrencyCode(target)
	r.UpdateMethod = domain.RateUpdateMethod(method)
	return r, err
}

// FindCurrentRate returns the most recently effective active rate for the pair at the given time.
func (r *PgxExchangeRateRepository) FindCurrentRate(ctx context.Context, base, target domain.CurrencyCode, at time.Time) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2 AND is_active
			AND effective_date <= $3 AND (expiry_date IS NULL OR expiry_date > $3)
		ORDER BY effective_date DESC
		LIMIT 1;`
	rate, err := scanRate(r.pool.QueryRow(ctx, query, string(base), string(target), at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active exchange rate for %s to %s", apperrors.ErrInvalidRate, base, target)
		}
		return nil, mapPgError(err, "failed to find current rate %s/%s", base, target)
	}
	return &rate, nil
}

// FindExchangeRateByID retrieves a rate by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`
	rate, err := scanRate(r.pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
		}
		return nil, mapPgError(err, "failed to find exchange rate %s", rateID)
	}
	return &rate, nil
}

// ListExchangeRates returns rates matching the filter ordered by effective date, newest first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + rateColumns + ` FROM exchange_rates WHERE 1 = 1`)
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}
	if filter.BaseCurrency != "" {
		add("base_currency = $%d", string(filter.BaseCurrency))
	}
	if filter.TargetCurrency != "" {
		add("target_currency = $%d", string(filter.TargetCurrency))
	}
	if filter.IsActive != nil {
		add("is_active = $%d", *filter.IsActive)
	}
	if filter.EffectiveFrom != nil {
		add("effective_date >= $%d", *filter.EffectiveFrom)
	}
	if filter.EffectiveTo != nil {
		add("effective_date < $%d", *filter.EffectiveTo)
	}
	sb.WriteString(" ORDER BY effective_date DESC, created_at DESC")
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
		return nil, mapPgError(err, "failed to list exchange rates")
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating exchange rate rows")
	}
	return rates, nil
}

// FindExchangeRateForUpdate selects and locks a rate row.
func (r *PgxExchangeRateRepository) FindExchangeRateForUpdate(ctx context.Context, tx pgx.Tx, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1 FOR UPDATE;`
	rate, err := scanRate(tx.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
		}
		return nil, mapPgError(err, "failed to lock exchange rate %s", rateID)
	}
	return &rate, nil
}

// UpdateExchangeRateTx persists rates, expiry, notes and audit fields.
func (r *PgxExchangeRateRepository) UpdateExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	query := `
		UPDATE exchange_rates
		SET buying_rate = $1, selling_rate = $2, expiry_date = $3, notes = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE exchange_rate_id = $7;
	`
	cmdTag, err := tx.Exec(ctx, query,
		rate.BuyingRate,
		rate.SellingRate,
		rate.ExpiryDate,
		rate.Notes,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
		rate.ExchangeRateID,
	)
	if err != nil {
		return mapPgError(err, "failed to update exchange rate %s", rate.ExchangeRateID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rate.ExchangeRateID)
	}
	return nil
}

// DeactivateActiveRatesTx deactivates every active rate of the pair.
func (r *PgxExchangeRateRepository) DeactivateActiveRatesTx(ctx context.Context, tx pgx.Tx, base, target domain.CurrencyCode, userID string, now time.Time) error {
	query := `
		UPDATE exchange_rates
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE base_currency = $3 AND target_currency = $4 AND is_active;
	`
	_, err := tx.Exec(ctx, query, now, userID, string(base), string(target))
	return mapPgError(err, "failed to deactivate rates %s/%s", base, target)
}

// InsertExchangeRateTx inserts a new rate.
func (r *PgxExchangeRateRepository) InsertExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		rate.ExchangeRateID,
		string(rate.BaseCurrency),
		string(rate.TargetCurrency),
		rate.BuyingRate,
		rate.SellingRate,
		rate.EffectiveDate,
		rate.ExpiryDate,
		string(rate.UpdateMethod),
		rate.IsActive,
		rate.Notes,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	return mapPgError(err, "failed to insert exchange rate %s", rate.ExchangeRateID)
}

// DeactivateExchangeRate marks a single rate as inactive.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, userID string, now time.Time) error {
	query := `
		UPDATE exchange_rates
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE exchange_rate_id = $3;
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, userID, rateID)
	if err != nil {
		return mapPgError(err, "failed to deactivate exchange rate %s", rateID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
	}
	return nil
}
