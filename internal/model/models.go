package model

import (
	"time"

	"gorm.io/datatypes"
)

// Wallet is the authoritative chip balance of one user.
type Wallet struct {
	UserID           int64 `gorm:"primaryKey;autoIncrement:false"`
	BalanceAvailable int64 `gorm:"not null;default:0"`
	TotalWagered     int64
	TotalRefund      int64
	TotalWin         int64
	UpdatedAt        time.Time
}

// Billing log types.
const (
	BillingStake        = "stake"
	BillingCancelRefund = "cancel_refund"
	BillingFoldRefund   = "fold_refund"
	BillingPayout       = "payout"
	BillingAdjust       = "adjust"
)

type BillingLog struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	UserID       int64 `gorm:"index"`
	Type         string
	Delta        int64
	BalanceAfter int64
	RoomID       int64
	Tag          string
	MetaJSON     datatypes.JSON
	CreatedAt    time.Time
}

// DiceMatch is the record of one finished dice session.
type DiceMatch struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	RoomID     int64  `gorm:"index"`
	Tag        string `gorm:"size:32"`
	HostID     int64
	Bet        int64
	Capacity   int
	Outcome    string `gorm:"size:32"` // payout/no_winner/cancelled/aborted
	Pot        int64
	Remainder  int64
	Forfeited  int64
	ResultJSON datatypes.JSON
	CreatedAt  time.Time
	EndedAt    time.Time
}
