package services

import "context"

// BranchDirectory resolves display names of branches.
type BranchDirectory interface {
	// ResolveBranchName never fails; unknown branches resolve to a placeholder.
	ResolveBranchName(ctx context.Context, branchID string) string

	// Invalidate drops a cached branch name.
	Invalidate(branchID string)

	// Purge drops every cached branch name.
	Purge()
}
