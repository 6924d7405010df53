package service

import (
	"context"

	"dice-service/internal/config"
	"dice-service/internal/service/auth"
	"dice-service/internal/service/dice"
	"dice-service/internal/service/history"
	"dice-service/internal/service/notify"
	"dice-service/internal/service/wallet"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Wallet  *wallet.Service
	History *history.Service
	Hub     *notify.Hub
	Dice    *dice.Service
	Auth    *auth.Service
}

func NewContainer(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Container {
	wallets := wallet.NewService(db, cfg.Game.StartingChips)
	records := history.NewService(db)
	hub := notify.NewHub(rdb, cfg.Game.ObserveChannel)

	var seq dice.Sequencer
	if rdb != nil {
		seq = dice.NewRedisSequencer(rdb, "")
	}

	diceSvc := dice.NewService(dice.Config{
		ChoiceTimeout: cfg.Game.ChoiceTimeout(),
		MinPlayers:    cfg.Game.MinPlayers,
		MaxPlayers:    cfg.Game.MaxPlayers,
		AllowedRooms:  cfg.Game.CommandRooms,
	}, dice.Deps{
		Ledger:    wallets,
		Dice:      dice.NewCryptoDie(dice.DefaultDieFaces),
		Notifier:  hub,
		Recorder:  records,
		Sequencer: seq,
	})

	return &Container{
		Wallet:  wallets,
		History: records,
		Hub:     hub,
		Dice:    diceSvc,
		Auth:    auth.NewService(cfg.Bridge.KeyHash, wallets),
	}
}

// Shutdown aborts open sessions and refunds their stakes.
func (c *Container) Shutdown(ctx context.Context) {
	c.Dice.Shutdown(ctx)
}
