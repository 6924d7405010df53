package history_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"dice-service/internal/model"
	"dice-service/internal/service/dice"
	"dice-service/internal/service/history"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) *history.Service {
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

	if err := db.AutoMigrate(&model.DiceMatch{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return history.NewService(db)
}

func report(roomID int64, tag string) dice.Report {
	return dice.Report{
		RoomID:   roomID,
		Tag:      tag,
		HostID:   1,
		Bet:      100,
		Capacity: 2,
		Outcome:  dice.OutcomePayout,
		Staked:   200,
		Pot:      200,
		Share:    200,
		Winners:  []int64{2},
		Players: []dice.PlayerResult{
			{UserID: 1, FirstRoll: 3, SecondRoll: 4, Total: 7},
			{UserID: 2, FirstRoll: 9, SecondRoll: 8, Total: 17, Payout: 200, Winner: true},
		},
		ResolvedAt: time.Now(),
	}
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i, tag := range []string{"#0001", "#0002", "#0003"} {
		if err := svc.Record(ctx, report(10, tag)); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}
	if err := svc.Record(ctx, report(11, "#0004")); err != nil {
		t.Fatalf("record other room failed: %v", err)
	}

	res, err := svc.List(ctx, 10, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 3 || len(res.Items) != 2 {
		t.Fatalf("expected 3 total and a page of 2, got %d and %d", res.Total, len(res.Items))
	}
	if res.Items[0].Tag != "#0003" {
		t.Fatalf("expected newest first, got %s", res.Items[0].Tag)
	}

	decoded, err := history.Report(res.Items[0])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !decoded.IsWinner(2) || decoded.Players[1].Status() != "9 + 8 = 17" {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}

	empty, err := svc.List(ctx, 99, 0, 0)
	if err != nil {
		t.Fatalf("list empty room failed: %v", err)
	}
	if empty.Total != 0 || len(empty.Items) != 0 {
		t.Fatalf("expected empty history, got %+v", empty)
	}
}
