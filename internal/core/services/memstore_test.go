package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
)

// memStore is a stateful in-memory stand-in for the pgsql repositories.
// WithTx snapshots all state and restores it when fn fails, like a rolled back transaction.
type memStore struct {
	txMu sync.Mutex // serialises units of work
	mu   sync.Mutex // guards the maps below

	reserves  map[string]domain.CurrencyReserve
	movements []domain.CurrencyMovement
	txns      map[string]domain.ExchangeTransaction
	sequences map[string]int64
	rates     map[string]domain.ExchangeRate
	branches  map[string]string
	ledgerSeq int64

	// failInsertMovementOn makes InsertMovementTx fail for the n-th insert (1-based) when set.
	failInsertMovementOn int
	movementInserts      int

	branchLookups int
}

func newMemStore() *memStore {
	return &memStore{
		reserves:  make(map[string]domain.CurrencyReserve),
		txns:      make(map[string]domain.ExchangeTransaction),
		sequences: make(map[string]int64),
		rates:     make(map[string]domain.ExchangeRate),
		branches:  make(map[string]string),
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    s,
		ReserveRepo:  s,
		MovementRepo: s,
		ExchangeRepo: s,
		RateRepo:     s,
		BranchRepo:   s,
	}
}

type memSnapshot struct {
	reserves  map[string]domain.CurrencyReserve
	movements []domain.CurrencyMovement
	txns      map[string]domain.ExchangeTransaction
	sequences map[string]int64
	rates     map[string]domain.ExchangeRate
	ledgerSeq int64
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		reserves:  make(map[string]domain.CurrencyReserve, len(s.reserves)),
		movements: append([]domain.CurrencyMovement(nil), s.movements...),
		txns:      make(map[string]domain.ExchangeTransaction, len(s.txns)),
		sequences: make(map[string]int64, len(s.sequences)),
		rates:     make(map[string]domain.ExchangeRate, len(s.rates)),
		ledgerSeq: s.ledgerSeq,
	}
	for k, v := range s.reserves {
		snap.reserves[k] = v
	}
	for k, v := range s.txns {
		snap.txns[k] = v
	}
	for k, v := range s.sequences {
		snap.sequences[k] = v
	}
	for k, v := range s.rates {
		snap.rates[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserves = snap.reserves
	s.movements = snap.movements
	s.txns = snap.txns
	s.sequences = snap.sequences
	s.rates = snap.rates
	s.ledgerSeq = snap.ledgerSeq
}

// WithTx implements repositories.TransactionManager.
func (s *memStore) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()
	return fn(nil)
}

// --- seeding helpers ---

func (s *memStore) addBranch(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[id] = name
}

func (s *memStore) putReserve(r domain.CurrencyReserve) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserves[r.ReserveID] = r
}

func (s *memStore) putRate(r domain.ExchangeRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[r.ExchangeRateID] = r
}

func (s *memStore) reserve(id string) domain.CurrencyReserve {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserves[id]
}

func (s *memStore) movementsOf(reserveID string) []domain.CurrencyMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CurrencyMovement
	for _, m := range s.movements {
		if m.ReserveID == reserveID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) allMovements() []domain.CurrencyMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CurrencyMovement(nil), s.movements...)
}

func (s *memStore) txnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

// --- ReserveRepositoryFacade ---

func (s *memStore) FindReserveByID(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[reserveID]
	if !ok {
		return nil, fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserveID)
	}
	return &r, nil
}

func (s *memStore) FindReserveByBranchAndCurrency(ctx context.Context, branchID string, currency domain.CurrencyCode) (*domain.CurrencyReserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reserves {
		if r.BranchID == branchID && r.Currency == currency {
			r := r
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s reserve of branch %s", apperrors.ErrReserveNotFound, currency, branchID)
}

func (s *memStore) ListReservesByBranch(ctx context.Context, branchID string) ([]domain.CurrencyReserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CurrencyReserve
	for _, r := range s.reserves {
		if r.BranchID == branchID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (s *memStore) CreateReserveIfAbsent(ctx context.Context, reserve domain.CurrencyReserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reserves {
		if r.BranchID == reserve.BranchID && r.Currency == reserve.Currency {
			return nil
		}
	}
	s.reserves[reserve.ReserveID] = reserve
	return nil
}

func (s *memStore) UpdateReserveLimits(ctx context.Context, reserve domain.CurrencyReserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[reserve.ReserveID]
	if !ok {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserve.ReserveID)
	}
	r.MinimumBalance = reserve.MinimumBalance
	r.MaximumBalance = reserve.MaximumBalance
	r.DailyLimit = reserve.DailyLimit
	r.Notes = reserve.Notes
	r.LastUpdatedAt = reserve.LastUpdatedAt
	r.LastUpdatedBy = reserve.LastUpdatedBy
	s.reserves[r.ReserveID] = r
	return nil
}

func (s *memStore) ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[reserveID]
	if !ok {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserveID)
	}
	r.DailyUsed = decimal.Zero
	r.DailyUsageResetAt = &asOf
	r.LastUpdatedAt = now
	r.LastUpdatedBy = userID
	s.reserves[reserveID] = r
	return nil
}

func (s *memStore) DeactivateReserve(ctx context.Context, reserveID string, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[reserveID]
	if !ok {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserveID)
	}
	r.IsActive = false
	r.LastUpdatedAt = now
	r.LastUpdatedBy = userID
	s.reserves[reserveID] = r
	return nil
}

func (s *memStore) FindReservesForUpdate(ctx context.Context, tx pgx.Tx, reserveIDs []string) (map[string]domain.CurrencyReserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.CurrencyReserve, len(reserveIDs))
	for _, id := range reserveIDs {
		if r, ok := s.reserves[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (s *memStore) UpdateReserveBalanceTx(ctx context.Context, tx pgx.Tx, reserve domain.CurrencyReserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reserves[reserve.ReserveID]; !ok {
		return fmt.Errorf("%w: reserve %s", apperrors.ErrReserveNotFound, reserve.ReserveID)
	}
	// Mirrors the currency_reserves_balance_non_negative check constraint.
	if reserve.CurrentBalance.IsNegative() {
		return fmt.Errorf("%w: check constraint", apperrors.ErrInsufficientBalance)
	}
	s.reserves[reserve.ReserveID] = reserve
	return nil
}

// --- MovementRepositoryFacade ---

func (s *memStore) InsertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.CurrencyMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movementInserts++
	if s.failInsertMovementOn > 0 && s.movementInserts == s.failInsertMovementOn {
		return fmt.Errorf("%w: injected failure", apperrors.ErrInternal)
	}
	if movement.ExchangeTransactionID != nil {
		if _, ok := s.txns[*movement.ExchangeTransactionID]; !ok {
			return fmt.Errorf("%w: foreign key violation", apperrors.ErrValidation)
		}
	}
	s.ledgerSeq++
	movement.Sequence = s.ledgerSeq
	s.movements = append(s.movements, movement)
	return nil
}

func (s *memStore) ListMovementsByReserve(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CurrencyMovement
	for _, m := range s.movements {
		if m.ReserveID != reserveID {
			continue
		}
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && !m.MovementDate.Before(*to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.After(out[j].MovementDate)
		}
		return out[i].Sequence > out[j].Sequence
	})
	return out, nil
}

func (s *memStore) ListMovementsByTransaction(ctx context.Context, transactionID string) ([]domain.CurrencyMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CurrencyMovement
	for _, m := range s.movements {
		if m.ExchangeTransactionID != nil && *m.ExchangeTransactionID == transactionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) ListMovementsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.CurrencyMovement, error) {
	return s.ListMovementsByTransaction(ctx, transactionID)
}

// --- ExchangeTransactionRepositoryFacade ---

func (s *memStore) FindExchangeTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &t, nil
}

func (s *memStore) FindExchangeTransactionByIdempotencyKey(ctx context.Context, branchID, key string) (*domain.ExchangeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		if t.BranchID == branchID && t.IdempotencyKey != nil && *t.IdempotencyKey == key {
			t := t
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: exchange transaction with key %s", apperrors.ErrNotFound, key)
}

func (s *memStore) ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ExchangeTransaction
	for _, t := range s.txns {
		switch {
		case filter.BranchID != "" && t.BranchID != filter.BranchID,
			filter.Status != "" && t.Status != filter.Status,
			filter.Direction != "" && t.Direction != filter.Direction,
			filter.From != nil && t.TransactionDate.Before(*filter.From),
			filter.To != nil && !t.TransactionDate.Before(*filter.To):
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].TransactionNumber > out[j].TransactionNumber
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memStore) MarkReceiptPrinted(ctx context.Context, transactionID string, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[transactionID]
	if !ok {
		return fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, transactionID)
	}
	t.ReceiptPrinted = true
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
	s.txns[transactionID] = t
	return nil
}

func (s *memStore) NextDailySequenceTx(ctx context.Context, tx pgx.Tx, branchID string, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := branchID + "|" + day.Format("2006-01-02")
	s.sequences[key]++
	return s.sequences[key], nil
}

func (s *memStore) InsertExchangeTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.ExchangeTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txns {
		if t.BranchID != txn.BranchID {
			continue
		}
		if t.TransactionNumber == txn.TransactionNumber {
			return fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, txn.TransactionNumber)
		}
		if t.IdempotencyKey != nil && txn.IdempotencyKey != nil && *t.IdempotencyKey == *txn.IdempotencyKey {
			return fmt.Errorf("%w: idempotency key %s", apperrors.ErrDuplicate, *txn.IdempotencyKey)
		}
	}
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *memStore) UpdateExchangeTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.ExchangeTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[txn.TransactionID]; !ok {
		return fmt.Errorf("%w: exchange transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *memStore) FindExchangeTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.ExchangeTransaction, error) {
	return s.FindExchangeTransactionByID(ctx, transactionID)
}

// --- ExchangeRateRepositoryFacade ---

func (s *memStore) FindCurrentRate(ctx context.Context, base, target domain.CurrencyCode, at time.Time) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.ExchangeRate
	for _, r := range s.rates {
		if r.BaseCurrency != base || r.TargetCurrency != target || !r.IsActive || r.EffectiveDate.After(at) {
			continue
		}
		if r.ExpiryDate != nil && !r.ExpiryDate.After(at) {
			continue
		}
		if best == nil || r.EffectiveDate.After(best.EffectiveDate) {
			r := r
			best = &r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no active exchange rate for %s to %s", apperrors.ErrInvalidRate, base, target)
	}
	return best, nil
}

func (s *memStore) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rates[rateID]
	if !ok {
		return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
	}
	return &r, nil
}

func (s *memStore) DeactivateActiveRatesTx(ctx context.Context, tx pgx.Tx, base, target domain.CurrencyCode, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.rates {
		if r.BaseCurrency == base && r.TargetCurrency == target && r.IsActive {
			r.IsActive = false
			r.LastUpdatedAt = now
			r.LastUpdatedBy = userID
			s.rates[id] = r
		}
	}
	return nil
}

func (s *memStore) InsertExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[rate.ExchangeRateID] = rate
	return nil
}

func (s *memStore) DeactivateExchangeRate(ctx context.Context, rateID string, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rates[rateID]
	if !ok {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
	}
	r.IsActive = false
	r.LastUpdatedAt = now
	r.LastUpdatedBy = userID
	s.rates[rateID] = r
	return nil
}

func (s *memStore) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ExchangeRate
	for _, r := range s.rates {
		switch {
		case filter.BaseCurrency != "" && r.BaseCurrency != filter.BaseCurrency,
			filter.TargetCurrency != "" && r.TargetCurrency != filter.TargetCurrency,
			filter.IsActive != nil && r.IsActive != *filter.IsActive,
			filter.EffectiveFrom != nil && r.EffectiveDate.Before(*filter.EffectiveFrom),
			filter.EffectiveTo != nil && !r.EffectiveDate.Before(*filter.EffectiveTo):
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.After(out[j].EffectiveDate) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memStore) FindExchangeRateForUpdate(ctx context.Context, tx pgx.Tx, rateID string) (*domain.ExchangeRate, error) {
	return s.FindExchangeRateByID(ctx, rateID)
}

func (s *memStore) UpdateExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rates[rate.ExchangeRateID]; !ok {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rate.ExchangeRateID)
	}
	s.rates[rate.ExchangeRateID] = rate
	return nil
}

// --- BranchReader ---

func (s *memStore) FindBranchName(ctx context.Context, branchID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branchLookups++
	name, ok := s.branches[branchID]
	if !ok || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
	}
	return name, nil
}

var (
	_ portsrepo.TransactionManager                  = (*memStore)(nil)
	_ portsrepo.ReserveRepositoryFacade             = (*memStore)(nil)
	_ portsrepo.MovementRepositoryFacade            = (*memStore)(nil)
	_ portsrepo.ExchangeTransactionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.BranchReader                        = (*memStore)(nil)
)
