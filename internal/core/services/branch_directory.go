package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
)

// branchDirectory caches branch names read from the branch master table.
type branchDirectory struct {
	BaseService
	repo  portsrepo.BranchReader
	cache *expirable.LRU[string, string]
}

// NewBranchDirectory creates a cached branch name resolver.
func NewBranchDirectory(repo portsrepo.BranchReader, size int, ttl time.Duration) *branchDirectory {
	if size <= 0 {
		size = 512
	}
	return &branchDirectory{
		repo:  repo,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

var _ portssvc.BranchDirectory = (*branchDirectory)(nil)

// ResolveBranchName returns the cached name or loads it. Lookup failures fall
// back to the placeholder and are not cached, so a later call retries.
func (d *branchDirectory) ResolveBranchName(ctx context.Context, branchID string) string {
	if name, ok := d.cache.Get(branchID); ok {
		return name
	}
	name, err := d.repo.FindBranchName(ctx, branchID)
	if err != nil {
		d.LogDebug(ctx, "Branch name not resolved, using placeholder",
			slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return domain.UnknownBranchName
	}
	d.cache.Add(branchID, name)
	return name
}

func (d *branchDirectory) Invalidate(branchID string) {
	d.cache.Remove(branchID)
}

func (d *branchDirectory) Purge() {
	d.cache.Purge()
}
