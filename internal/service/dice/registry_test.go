package dice_test

import (
	"errors"
	"testing"

	"dice-service/internal/service/dice"
	appErr "dice-service/pkg/errors"
)

func TestRegistryOneSessionPerRoom(t *testing.T) {
	reg := dice.NewRegistry()

	sess, err := reg.Create(room, 1, 100, 2, alice)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := reg.Create(room, 2, 100, 2, bob); !errors.Is(err, appErr.ErrRoomBusy) {
		t.Fatalf("expected ErrRoomBusy, got %v", err)
	}
	got, err := reg.Get(room)
	if err != nil || got != sess {
		t.Fatalf("get returned %v, %v", got, err)
	}
	if sess.Tag() != "#0001" || sess.RoomID() != room {
		t.Fatalf("unexpected session identity %s/%d", sess.Tag(), sess.RoomID())
	}

	reg.Remove(sess)
	if _, err := reg.Get(room); !errors.Is(err, appErr.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegistryDoubleRemovePanics(t *testing.T) {
	reg := dice.NewRegistry()
	sess, err := reg.Create(room, 1, 100, 2, alice)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	reg.Remove(sess)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double removal")
		}
	}()
	reg.Remove(sess)
}

func TestRegistryRemoveStaleSessionPanics(t *testing.T) {
	reg := dice.NewRegistry()
	old, _ := reg.Create(room, 1, 100, 2, alice)
	reg.Remove(old)
	if _, err := reg.Create(room, 2, 100, 2, bob); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic removing a replaced session")
		}
	}()
	reg.Remove(old)
}

func TestTopScorersKeepsRosterOrder(t *testing.T) {
	order := []int64{carol, alice, bob}
	totals := map[int64]int{alice: 31, bob: 12, carol: 31}

	winners := dice.TopScorers(order, totals)
	if len(winners) != 2 || winners[0] != carol || winners[1] != alice {
		t.Fatalf("unexpected winners %v", winners)
	}
}

func TestSeededDieStaysInRange(t *testing.T) {
	die := dice.NewSeededDie(dice.DefaultDieFaces, 42)
	replay := dice.NewSeededDie(dice.DefaultDieFaces, 42)
	for i := 0; i < 1000; i++ {
		v := die.RollDie()
		if v < 1 || v > dice.DefaultDieFaces {
			t.Fatalf("roll %d out of range", v)
		}
		if r := replay.RollDie(); r != v {
			t.Fatalf("same seed diverged at %d: %d != %d", i, v, r)
		}
	}

	crypto := dice.NewCryptoDie(6)
	for i := 0; i < 200; i++ {
		if v := crypto.RollDie(); v < 1 || v > 6 {
			t.Fatalf("crypto roll %d out of range", v)
		}
	}
}
