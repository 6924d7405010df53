package wallet_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dice-service/internal/model"
	"dice-service/internal/service/wallet"
	appErr "dice-service/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*gorm.DB, *wallet.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.Wallet{}, &model.BillingLog{}); err != nil {
		t.Fatalf("failed to migrate wallet models: %v", err)
	}
	return db, wallet.NewService(db, 1000)
}

func TestBalanceProvisionsStartingChips(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	balance, err := svc.Balance(ctx, 42)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 1000 {
		t.Fatalf("expected 1000 starting chips, got %d", balance)
	}

	var count int64
	if err := db.Model(&model.Wallet{}).Where("user_id = ?", 42).Count(&count).Error; err != nil {
		t.Fatalf("count wallets failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one wallet row, got %d", count)
	}

	// Second lookup must not reset the balance.
	if err := svc.Debit(ctx, 42, 100, wallet.Entry{Type: model.BillingStake}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	balance, err = svc.Balance(ctx, 42)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 900 {
		t.Fatalf("expected 900, got %d", balance)
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	err := svc.Debit(ctx, 7, 1500, wallet.Entry{Type: model.BillingStake, RoomID: 1, Tag: "#0001"})
	if !errors.Is(err, appErr.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	balance, err := svc.Balance(ctx, 7)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 1000 {
		t.Fatalf("failed debit must not move funds, got %d", balance)
	}

	var logs int64
	if err := db.Model(&model.BillingLog{}).Where("user_id = ?", 7).Count(&logs).Error; err != nil {
		t.Fatalf("count logs failed: %v", err)
	}
	if logs != 0 {
		t.Fatalf("expected no billing rows, got %d", logs)
	}
}

func TestDebitCreditWriteBillingLogs(t *testing.T) {
	ctx := context.Background()
	db, svc := newService(t)

	if err := svc.Debit(ctx, 9, 100, wallet.Entry{Type: model.BillingStake, RoomID: 5, Tag: "#0003"}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if err := svc.Credit(ctx, 9, 50, wallet.Entry{Type: model.BillingFoldRefund, RoomID: 5, Tag: "#0003"}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := svc.Credit(ctx, 9, 300, wallet.Entry{Type: model.BillingPayout, RoomID: 5, Tag: "#0003", Meta: map[string]interface{}{"winners": 1}}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	w, err := svc.GetWallet(ctx, 9)
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if w.BalanceAvailable != 1250 {
		t.Fatalf("expected 1250, got %d", w.BalanceAvailable)
	}
	if w.TotalWagered != 100 || w.TotalRefund != 50 || w.TotalWin != 300 {
		t.Fatalf("unexpected totals: %+v", w)
	}

	var logs []model.BillingLog
	if err := db.Where("user_id = ?", 9).Order("id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("load logs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 billing rows, got %d", len(logs))
	}
	if logs[0].Delta != -100 || logs[0].BalanceAfter != 900 || logs[0].Tag != "#0003" {
		t.Fatalf("unexpected stake row: %+v", logs[0])
	}
	if logs[2].Type != model.BillingPayout || logs[2].BalanceAfter != 1250 {
		t.Fatalf("unexpected payout row: %+v", logs[2])
	}
	if !strings.Contains(string(logs[2].MetaJSON), `"winners":1`) {
		t.Fatalf("expected payout meta to be stored, got %s", logs[2].MetaJSON)
	}
	if string(logs[0].MetaJSON) != "{}" {
		t.Fatalf("expected empty meta for stake row, got %s", logs[0].MetaJSON)
	}
}

func TestNegativeAmountRejected(t *testing.T) {
	ctx := context.Background()
	_, svc := newService(t)

	if err := svc.Credit(ctx, 1, -5, wallet.Entry{Type: model.BillingPayout}); !errors.Is(err, appErr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if err := svc.Debit(ctx, 1, -5, wallet.Entry{Type: model.BillingStake}); !errors.Is(err, appErr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestAdminSetWallet(t *testing.T) {
	ctx := context.Background()
	_, svc := newService(t)

	if _, err := svc.AdminSetWallet(ctx, 3, wallet.AdminSetWalletRequest{}); !errors.Is(err, appErr.ErrInvalidWalletPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}

	negative := int64(-1)
	if _, err := svc.AdminSetWallet(ctx, 3, wallet.AdminSetWalletRequest{BalanceAvailable: &negative}); !errors.Is(err, appErr.ErrInvalidWalletPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}

	target := int64(5000)
	w, err := svc.AdminSetWallet(ctx, 3, wallet.AdminSetWalletRequest{BalanceAvailable: &target})
	if err != nil {
		t.Fatalf("set wallet failed: %v", err)
	}
	if w.BalanceAvailable != 5000 {
		t.Fatalf("expected 5000, got %d", w.BalanceAvailable)
	}
}
