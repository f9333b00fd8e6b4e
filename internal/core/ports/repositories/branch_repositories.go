package repositories

import "context"

// BranchReader resolves branch master data owned by another system.
type BranchReader interface {
	// FindBranchName returns apperrors.ErrNotFound when the branch is unknown.
	FindBranchName(ctx context.Context, branchID string) (string, error)
}
