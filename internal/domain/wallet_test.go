package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNewWalletSignupBonus(t *testing.T) {
	w := NewWallet("u-1", "INR", dec(50), time.Now().UTC())

	if !w.Bonus.Equal(dec(50)) {
		t.Errorf("bonus = %s, want 50", w.Bonus)
	}
	if !w.Aggregate.Equal(dec(50)) {
		t.Errorf("aggregate = %s, want 50", w.Aggregate)
	}
	if !w.Withdrawable.IsZero() {
		t.Errorf("withdrawable = %s, want 0", w.Withdrawable)
	}
}

func TestWalletInvariantsAfterMutations(t *testing.T) {
	w := NewWallet("u-1", "INR", decimal.Zero, time.Now().UTC())

	w.Credit(CategoryMain, dec(100))
	w.Credit(CategoryGame, dec(40))
	if _, err := w.Debit(CategoryGame, dec(15), ClampDebit); err != nil {
		t.Fatalf("debit: %v", err)
	}
	w.Credit(CategoryBonus, dec(7))

	if !w.Aggregate.Equal(w.Sum()) {
		t.Errorf("aggregate %s != sum %s", w.Aggregate, w.Sum())
	}
	if !w.Withdrawable.Equal(w.Main) {
		t.Errorf("withdrawable %s != main %s", w.Withdrawable, w.Main)
	}
	for _, c := range AllCategories() {
		if w.Balance(c).IsNegative() {
			t.Errorf("category %s is negative: %s", c, w.Balance(c))
		}
	}
}

func TestDebitClampFloorsAtZero(t *testing.T) {
	w := NewWallet("u-1", "INR", decimal.Zero, time.Now().UTC())
	w.Credit(CategoryDeposit, dec(30))

	taken, err := w.Debit(CategoryDeposit, dec(50), ClampDebit)
	if err != nil {
		t.Fatalf("clamped debit errored: %v", err)
	}
	if !taken.Equal(dec(30)) {
		t.Errorf("taken = %s, want 30", taken)
	}
	if !w.Deposit.IsZero() {
		t.Errorf("deposit = %s, want 0", w.Deposit)
	}
}

func TestDebitStrictFails(t *testing.T) {
	w := NewWallet("u-1", "INR", decimal.Zero, time.Now().UTC())
	w.Credit(CategoryMain, dec(30))

	_, err := w.Debit(CategoryMain, dec(50), StrictDebit)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !w.Main.Equal(dec(30)) {
		t.Errorf("main changed on failed strict debit: %s", w.Main)
	}

	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatal("error is not an InsufficientFundsError")
	}
	if !ife.Aggregate.Equal(dec(30)) {
		t.Errorf("error aggregate = %s, want 30", ife.Aggregate)
	}
}

func TestStakeSource(t *testing.T) {
	tests := []struct {
		name     string
		balances map[Category]int64
		amount   int64
		want     Category
		wantErr  bool
	}{
		{
			name:     "single category covers exactly",
			balances: map[Category]int64{CategoryGame: 5},
			amount:   5,
			want:     CategoryGame,
		},
		{
			name:     "priority order picks game first",
			balances: map[Category]int64{CategoryGame: 10, CategoryMain: 100},
			amount:   8,
			want:     CategoryGame,
		},
		{
			name:     "bonus before deposit and main",
			balances: map[Category]int64{CategoryBonus: 20, CategoryDeposit: 50, CategoryMain: 50},
			amount:   15,
			want:     CategoryBonus,
		},
		{
			name:     "no single cover, largest takes all",
			balances: map[Category]int64{CategoryGame: 3, CategoryBonus: 6, CategoryMain: 4},
			amount:   10,
			want:     CategoryBonus,
		},
		{
			name:     "sum insufficient",
			balances: map[Category]int64{CategoryGame: 5, CategoryBonus: 3},
			amount:   10,
			wantErr:  true,
		},
		{
			name:     "earning does not count toward stakes",
			balances: map[Category]int64{CategoryEarning: 1000},
			amount:   10,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWallet("u-1", "INR", decimal.Zero, time.Now().UTC())
			for c, v := range tt.balances {
				w.Credit(c, dec(v))
			}

			got, err := w.StakeSource(dec(tt.amount))
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientFunds) {
					t.Fatalf("expected ErrInsufficientFunds, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("source = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("jackpot"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}
