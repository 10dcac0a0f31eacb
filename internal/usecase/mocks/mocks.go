package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	CreateFunc               func(ctx context.Context, wallet *domain.Wallet) error
	GetByUserIDFunc          func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error
	ListUserIDsFunc          func(ctx context.Context, limit, offset int) ([]string, error)
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Seed installs a wallet in the backing map.
func (m *MockWalletRepository) Seed(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[wallet.UserID]; ok {
		return domain.ErrWalletExists
	}
	m.wallets[wallet.UserID] = wallet
	return nil
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[userID]; ok {
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockWalletRepository) Update(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
	return nil
}

func (m *MockWalletRepository) ListUserIDs(ctx context.Context, limit, offset int) ([]string, error) {
	if m.ListUserIDsFunc != nil {
		return m.ListUserIDsFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id := range m.wallets {
		ids = append(ids, id)
	}
	if offset >= len(ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc                func(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUserFunc            func(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByTypeFunc             func(ctx context.Context, userID string, entryType domain.EntryType) (decimal.Decimal, error)
	SumsByCategoryAndTypeFunc func(ctx context.Context, userID string) ([]usecase.CategoryTypeSum, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Entries returns everything appended so far.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEntryRepository) SumByType(ctx context.Context, userID string, entryType domain.EntryType) (decimal.Decimal, error) {
	if m.SumByTypeFunc != nil {
		return m.SumByTypeFunc(ctx, userID, entryType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, e := range m.entries {
		if e.UserID == userID && e.Type == entryType {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (m *MockEntryRepository) SumsByCategoryAndType(ctx context.Context, userID string) ([]usecase.CategoryTypeSum, error) {
	if m.SumsByCategoryAndTypeFunc != nil {
		return m.SumsByCategoryAndTypeFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := make(map[domain.Category]map[domain.EntryType]decimal.Decimal)
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if totals[e.Category] == nil {
			totals[e.Category] = make(map[domain.EntryType]decimal.Decimal)
		}
		totals[e.Category][e.Type] = totals[e.Category][e.Type].Add(e.Amount)
	}
	var out []usecase.CategoryTypeSum
	for c, byType := range totals {
		for t, sum := range byType {
			out = append(out, usecase.CategoryTypeSum{Category: c, Type: t, Total: sum})
		}
	}
	return out, nil
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository.
type MockWithdrawalRepository struct {
	mu          sync.RWMutex
	withdrawals map[string]*domain.Withdrawal

	CreateFunc       func(ctx context.Context, withdrawal *domain.Withdrawal) error
	DeleteFunc       func(ctx context.Context, id string) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Withdrawal, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.WithdrawalStatus, updatedAt time.Time) error
	ListByUserFunc   func(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error)
}

func NewMockWithdrawalRepository() *MockWithdrawalRepository {
	return &MockWithdrawalRepository{
		withdrawals: make(map[string]*domain.Withdrawal),
	}
}

// Count reports how many records currently exist.
func (m *MockWithdrawalRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.withdrawals)
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *domain.Withdrawal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, withdrawal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawals[withdrawal.ID] = withdrawal
	return nil
}

func (m *MockWithdrawalRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.withdrawals, id)
	return nil
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.withdrawals[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.withdrawals[id]; ok {
		w.Status = status
		w.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Withdrawal
	for _, w := range m.withdrawals {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockRetrier runs the operation once, no backoff.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return "id-" + time.Now().UTC().Format("150405") + "-" + itoa(m.n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// MockTaskEnqueuer records enqueued work.
type MockTaskEnqueuer struct {
	mu          sync.Mutex
	Reconciles  []string
	Completions []string

	EnqueueReconcileWalletFunc    func(ctx context.Context, userID string) error
	EnqueueCompleteWithdrawalFunc func(ctx context.Context, withdrawalID string) error
}

func NewMockTaskEnqueuer() *MockTaskEnqueuer {
	return &MockTaskEnqueuer{}
}

func (m *MockTaskEnqueuer) EnqueueReconcileWallet(ctx context.Context, userID string) error {
	if m.EnqueueReconcileWalletFunc != nil {
		return m.EnqueueReconcileWalletFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reconciles = append(m.Reconciles, userID)
	return nil
}

func (m *MockTaskEnqueuer) EnqueueCompleteWithdrawal(ctx context.Context, withdrawalID string) error {
	if m.EnqueueCompleteWithdrawalFunc != nil {
		return m.EnqueueCompleteWithdrawalFunc(ctx, withdrawalID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completions = append(m.Completions, withdrawalID)
	return nil
}
