package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxBranchRepository reads branch names from the branches mirror table.
type PgxBranchRepository struct {
	pool Pool
}

func newPgxBranchRepository(pool Pool) *PgxBranchRepository {
	return &PgxBranchRepository{pool: pool}
}

var _ portsrepo.BranchReader = (*PgxBranchRepository)(nil)

// FindBranchName returns the display name of a branch.
func (r *PgxBranchRepository) FindBranchName(ctx context.Context, branchID string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM branches WHERE branch_id = $1;`, branchID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return "", mapPgError(err, "failed to find branch %s", branchID)
	}
	return name, nil
}
