package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// WalletUseCase is the single source of truth for a user's categorized
// funds and the only path through which category values change. Every
// mutation locks the wallet row, applies the adjustment and recomputes
// the derived aggregate in the same transaction, so two concurrent
// deductions for the same user serialize instead of overdrawing.
type WalletUseCase struct {
	txManager   TransactionManager
	walletRepo  WalletRepository
	entryRepo   EntryRepository
	retrier     Retrier
	idGen       IDGenerator
	logger      zerolog.Logger
	signupBonus decimal.Decimal
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	retrier Retrier,
	idGen IDGenerator,
	logger zerolog.Logger,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:   txManager,
		walletRepo:  walletRepo,
		entryRepo:   entryRepo,
		retrier:     retrier,
		idGen:       idGen,
		logger:      logger,
		signupBonus: DefaultSignupBonus,
	}
}

// SetSignupBonus overrides the default bonus credited at wallet creation.
func (uc *WalletUseCase) SetSignupBonus(bonus decimal.Decimal) {
	uc.signupBonus = bonus
}

// CreateWallet creates a wallet with zero balances plus the signup bonus
// credited to the bonus category, and records the bonus in the ledger.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	now := time.Now().UTC()
	wallet := domain.NewWallet(userID, currency, uc.signupBonus, now)

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	if uc.signupBonus.IsPositive() {
		uc.appendEntry(ctx, &domain.LedgerEntry{
			UserID:      userID,
			Type:        domain.EntrySignupBonus,
			Category:    domain.CategoryBonus,
			Amount:      uc.signupBonus,
			Description: "signup bonus",
		})
	}

	return wallet, nil
}

// GetWallet returns the live wallet row.
func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByUserID(ctx, userID)
}

// GetAggregate returns the sum of the eight categories.
func (uc *WalletUseCase) GetAggregate(ctx context.Context, userID string) (decimal.Decimal, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Aggregate, nil
}

// AdjustInput describes one signed category adjustment.
type AdjustInput struct {
	UserID      string
	Category    domain.Category
	Amount      decimal.Decimal
	Direction   domain.Direction
	Policy      domain.DebitPolicy
	EntryType   domain.EntryType
	Description string
}

// Adjust applies a credit or debit to one category. Debits follow the
// input policy: ClampDebit floors at zero and reports the amount actually
// taken, StrictDebit fails on shortfall. The aggregate is reconciled in
// the same transaction; the ledger entry is appended best-effort after
// commit and never rolls the mutation back.
func (uc *WalletUseCase) Adjust(ctx context.Context, input AdjustInput) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return decimal.Zero, err
	}
	if _, err := domain.ParseCategory(string(input.Category)); err != nil {
		return decimal.Zero, err
	}

	applied := decimal.Zero
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		applied, err = uc.adjustTx(ctx, input)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	if input.EntryType != "" {
		uc.appendEntry(ctx, &domain.LedgerEntry{
			UserID:      input.UserID,
			Type:        input.EntryType,
			Category:    input.Category,
			Amount:      applied,
			Description: input.Description,
		})
	}

	return applied, nil
}

func (uc *WalletUseCase) adjustTx(ctx context.Context, input AdjustInput) (decimal.Decimal, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	applied := input.Amount
	if input.Direction == domain.DirectionCredit {
		wallet.Credit(input.Category, input.Amount)
	} else {
		applied, err = wallet.Debit(input.Category, input.Amount, input.Policy)
		if err != nil {
			return decimal.Zero, err
		}
	}

	wallet.UpdatedAt = time.Now().UTC()
	if err := uc.walletRepo.Update(ctx, tx, wallet); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	return applied, nil
}

// StakeDeduction reports which category funded a stake and how much was
// actually taken. Amount is below the requested stake when the clamped
// largest-category fallback could not cover it in full.
type StakeDeduction struct {
	Category domain.Category
	Amount   decimal.Decimal
}

// DeductForStake removes a stake from the wallet following the fixed
// priority order game, bonus, deposit, main. The first category that
// alone covers the amount takes all of it; if none suffices but the four
// together do, the single largest takes the entire amount (a clamped
// debit, never a split). If the four together cannot cover the amount it
// fails with ErrInsufficientFunds carrying the computed aggregate, and no
// category changes.
func (uc *WalletUseCase) DeductForStake(ctx context.Context, userID string, amount decimal.Decimal) (*StakeDeduction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var deduction *StakeDeduction
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		deduction, err = uc.deductForStakeTx(ctx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.appendEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Type:        domain.EntryStake,
		Category:    deduction.Category,
		Amount:      deduction.Amount,
		Description: fmt.Sprintf("stake from %s", deduction.Category),
	})

	return deduction, nil
}

func (uc *WalletUseCase) deductForStakeTx(ctx context.Context, userID string, amount decimal.Decimal) (*StakeDeduction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	source, err := wallet.StakeSource(amount)
	if err != nil {
		return nil, err
	}

	// The largest-balance fallback can take less than the stake; the
	// debit clamps at zero rather than splitting across categories.
	taken, err := wallet.Debit(source, amount, domain.ClampDebit)
	if err != nil {
		return nil, err
	}

	wallet.UpdatedAt = time.Now().UTC()
	if err := uc.walletRepo.Update(ctx, tx, wallet); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &StakeDeduction{Category: source, Amount: taken}, nil
}

// appendEntry writes a ledger entry best-effort: a failure is reported to
// diagnostics but never rolls back the balance mutation that produced it.
func (uc *WalletUseCase) appendEntry(ctx context.Context, entry *domain.LedgerEntry) {
	entry.ID = uc.idGen.Generate()
	entry.Status = domain.EntryStatusCompleted
	entry.CreatedAt = time.Now().UTC()

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		uc.logger.Error().Err(err).
			Str("user_id", entry.UserID).
			Str("entry_type", string(entry.Type)).
			Str("amount", entry.Amount.String()).
			Msg("ledger append failed; wallet and ledger may diverge until next reconcile")
	}
}
