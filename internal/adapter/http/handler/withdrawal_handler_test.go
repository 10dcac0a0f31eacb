package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/dto"
	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

type withdrawalServiceStub struct {
	requestFn func(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*domain.Withdrawal, error)
	getFn     func(ctx context.Context, id string) (*domain.Withdrawal, error)
	listFn    func(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error)
}

func (s *withdrawalServiceStub) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*domain.Withdrawal, error) {
	return s.requestFn(ctx, userID, amount, destination)
}

func (s *withdrawalServiceStub) Get(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return s.getFn(ctx, id)
}

func (s *withdrawalServiceStub) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error) {
	return s.listFn(ctx, userID, limit, offset)
}

func TestWithdrawalHandler_Create_Success(t *testing.T) {
	handler := NewWithdrawalHandler(&withdrawalServiceStub{
		requestFn: func(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*domain.Withdrawal, error) {
			return &domain.Withdrawal{
				ID:          "wd-1",
				UserID:      userID,
				Amount:      amount,
				Destination: destination,
				Status:      domain.WithdrawalStatusProcessing,
				CreatedAt:   time.Now().UTC(),
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateWithdrawalRequest{
		Amount:      decimal.NewFromInt(150),
		Destination: "upi:someone@bank",
	})
	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/u-1/withdrawals", bytes.NewReader(body)), "userID", "u-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.WithdrawalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "wd-1" || resp.Status != string(domain.WithdrawalStatusProcessing) {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestWithdrawalHandler_Create_InsufficientMain(t *testing.T) {
	handler := NewWithdrawalHandler(&withdrawalServiceStub{
		requestFn: func(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*domain.Withdrawal, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(150)})
	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/u-1/withdrawals", bytes.NewReader(body)), "userID", "u-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestWithdrawalHandler_Get_NotFound(t *testing.T) {
	handler := NewWithdrawalHandler(&withdrawalServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Withdrawal, error) {
			return nil, domain.ErrWithdrawalNotFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/withdrawals/wd-missing", nil), "id", "wd-missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWithdrawalHandler_List(t *testing.T) {
	handler := NewWithdrawalHandler(&withdrawalServiceStub{
		listFn: func(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error) {
			return []*domain.Withdrawal{
				{ID: "wd-2", UserID: userID, Status: domain.WithdrawalStatusProcessing},
				{ID: "wd-1", UserID: userID, Status: domain.WithdrawalStatusCompleted},
			}, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/wallets/u-1/withdrawals", nil), "userID", "u-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.WithdrawalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "wd-2" {
		t.Fatalf("expected newest first, got %+v", resp)
	}
}
