package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository on the same pool.
func NewRepositoryProvider(dbPool Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    NewTxManager(dbPool, lockTimeout),
		ReserveRepo:  newPgxReserveRepository(dbPool),
		MovementRepo: newPgxMovementRepository(dbPool),
		ExchangeRepo: newPgxExchangeRepository(dbPool),
		RateRepo:     newPgxExchangeRateRepository(dbPool),
		BranchRepo:   newPgxBranchRepository(dbPool),
	}
}
