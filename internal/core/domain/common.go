package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SystemUserID is recorded as the actor for records created implicitly (e.g. lazily created reserves).
const SystemUserID = "System"

// UnknownBranchName is used whenever the branch directory cannot resolve a branch.
const UnknownBranchName = "Unknown Branch"

// MaxBranchIDLength matches the width of every branch_id column.
const MaxBranchIDLength = 64

// NormalizeBranchID trims id and checks it is present and fits storage.
func NormalizeBranchID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: branch id is required", apperrors.ErrValidation)
	}
	if len(id) > MaxBranchIDLength {
		return "", fmt.Errorf("%w: branch id must be at most %d characters", apperrors.ErrValidation, MaxBranchIDLength)
	}
	return id, nil
}
