package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dice-service/internal/model"
	appErr "dice-service/pkg/errors"
	"dice-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the chip ledger. Every debit and credit runs in its own
// transaction and writes a BillingLog row.
type Service struct {
	db            *gorm.DB
	startingChips int64
}

// Entry describes why a balance moved.
type Entry struct {
	Type   string
	RoomID int64
	Tag    string
	Meta   map[string]interface{}
}

type AdminSetWalletRequest struct {
	BalanceAvailable *int64
}

func NewService(db *gorm.DB, startingChips int64) *Service {
	return &Service{db: db, startingChips: startingChips}
}

// GetWallet returns the wallet of userID, provisioning it on first use.
func (s *Service) GetWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet *model.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = s.ensureLocked(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.BalanceAvailable, nil
}

// Debit removes amount from userID, failing with ErrInsufficientBalance
// when the balance is lower.
func (s *Service) Debit(ctx context.Context, userID, amount int64, entry Entry) error {
	if amount < 0 {
		return appErr.ErrInvalidAmount
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := s.ensureLocked(tx, userID)
		if err != nil {
			return err
		}

		result := tx.Model(&model.Wallet{}).
			Where("user_id = ? AND balance_available >= ?", userID, amount).
			Updates(map[string]interface{}{
				"balance_available": gorm.Expr("balance_available - ?", amount),
				"total_wagered":     gorm.Expr("total_wagered + ?", amount),
				"updated_at":        time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: balance %d < %d", appErr.ErrInsufficientBalance, wallet.BalanceAvailable, amount)
		}

		return s.appendLog(tx, userID, -amount, wallet.BalanceAvailable-amount, entry)
	})
}

// Credit adds amount to userID. Refund entries also bump TotalRefund,
// payouts bump TotalWin.
func (s *Service) Credit(ctx context.Context, userID, amount int64, entry Entry) error {
	if amount < 0 {
		return appErr.ErrInvalidAmount
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := s.ensureLocked(tx, userID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"balance_available": gorm.Expr("balance_available + ?", amount),
			"updated_at":        time.Now(),
		}
		switch entry.Type {
		case model.BillingCancelRefund, model.BillingFoldRefund:
			updates["total_refund"] = gorm.Expr("total_refund + ?", amount)
		case model.BillingPayout:
			updates["total_win"] = gorm.Expr("total_win + ?", amount)
		}

		if err := tx.Model(&model.Wallet{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return err
		}

		return s.appendLog(tx, userID, amount, wallet.BalanceAvailable+amount, entry)
	})
}

func (s *Service) AdminSetWallet(ctx context.Context, userID int64, req AdminSetWalletRequest) (*model.Wallet, error) {
	if req.BalanceAvailable == nil {
		return nil, fmt.Errorf("%w: balanceAvailable is required", appErr.ErrInvalidWalletPayload)
	}
	if *req.BalanceAvailable < 0 {
		return nil, fmt.Errorf("%w: balanceAvailable must be >= 0", appErr.ErrInvalidWalletPayload)
	}

	var wallet *model.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = s.ensureLocked(tx, userID)
		if err != nil {
			return err
		}
		delta := *req.BalanceAvailable - wallet.BalanceAvailable
		wallet.BalanceAvailable = *req.BalanceAvailable
		wallet.UpdatedAt = time.Now()
		if err := tx.Save(wallet).Error; err != nil {
			return err
		}
		return s.appendLog(tx, userID, delta, wallet.BalanceAvailable, Entry{Type: model.BillingAdjust})
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("wallet adjusted",
		zap.Int64("userID", userID),
		zap.Int64("balance", wallet.BalanceAvailable),
	)
	return wallet, nil
}

// ensureLocked loads the wallet row for update, creating it with the
// starting chips when absent.
func (s *Service) ensureLocked(tx *gorm.DB, userID int64) (*model.Wallet, error) {
	wallet := &model.Wallet{}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(wallet).Error
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = &model.Wallet{
		UserID:           userID,
		BalanceAvailable: s.startingChips,
		UpdatedAt:        time.Now(),
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(wallet).Error; err != nil {
		return nil, err
	}
	// Re-read in case a concurrent request created the row first.
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(wallet).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *Service) appendLog(tx *gorm.DB, userID, delta, balanceAfter int64, entry Entry) error {
	log := model.BillingLog{
		UserID:       userID,
		Type:         entry.Type,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		RoomID:       entry.RoomID,
		Tag:          entry.Tag,
		MetaJSON:     mustJSON(entry.Meta),
		CreatedAt:    time.Now(),
	}
	return tx.Create(&log).Error
}

func mustJSON(v map[string]interface{}) datatypes.JSON {
	if len(v) == 0 {
		return datatypes.JSON("{}")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
