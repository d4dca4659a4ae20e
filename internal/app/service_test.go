package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(zap.NewNop().Sugar())
}

// seated creates a game with p1 on Black and p2 on White.
func seated(t *testing.T, s *Service) *GameState {
	t.Helper()
	gs, err := s.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	if side, _, err := s.Join(gs.ID, "p1"); err != nil || side != domain.Black {
		t.Fatalf("p1 should claim Black, got %v, err=%v", side, err)
	}
	if side, _, err := s.Join(gs.ID, "p2"); err != nil || side != domain.White {
		t.Fatalf("p2 should claim White, got %v, err=%v", side, err)
	}
	return gs
}

func TestCreateAndGet(t *testing.T) {
	s := newTestService(t)
	gs, err := s.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	if gs.ID == "" {
		t.Fatalf("expected non-empty game ID")
	}
	if gs.Game.Turn != domain.Black {
		t.Fatalf("expected initial turn Black")
	}
	if gs.Game.Board != domain.NewBoard() {
		t.Fatalf("expected starting position")
	}
	if gs.Created.IsZero() || gs.Updated.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	got, ok := s.Get(gs.ID)
	if !ok || got.ID != gs.ID {
		t.Fatalf("Get should find created game")
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("Get should miss unknown id")
	}
}

func TestJoinSeatsAndRejoin(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)

	side, _, err := s.Join(gs.ID, "p1")
	if err != nil || side != domain.Black {
		t.Fatalf("p1 rejoin should keep Black, got %v, err=%v", side, err)
	}
	side, _, err = s.Join(gs.ID, "p3")
	if err != nil || side != domain.Empty {
		t.Fatalf("p3 should spectate (Empty), got %v, err=%v", side, err)
	}
	if _, _, err := s.Join("nope", "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayEnforcesTurnAndSpectatorBlocked(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)
	s.Join(gs.ID, "p3")

	// White cannot play first
	if _, err := s.Play(gs.ID, "p2", 4, 2); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := s.Play(gs.ID, "p3", 2, 3); !errors.Is(err, ErrNotAPlayer) {
		t.Fatalf("expected ErrNotAPlayer, got %v", err)
	}
	st, err := s.Play(gs.ID, "p1", 2, 3)
	if err != nil {
		t.Fatalf("Black play failed: %v", err)
	}
	white, black := st.Game.Score()
	if st.Game.Turn != domain.White || white != 1 || black != 4 {
		t.Fatalf("unexpected state after Black move: turn=%v white=%d black=%d", st.Game.Turn, white, black)
	}
	if _, err := s.Play(gs.ID, "p1", 2, 2); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for Black again, got %v", err)
	}
	if _, err := s.Play("nope", "p1", 2, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayRejectionsLeaveStateUnchanged(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)
	before, _ := s.Get(gs.ID)

	cases := []struct {
		x, y int
		want error
	}{
		{3, 3, domain.ErrOccupied},
		{0, 0, domain.ErrIllegalMove},
		{9, 2, domain.ErrOutOfBounds},
	}
	for _, c := range cases {
		if _, err := s.Play(gs.ID, "p1", c.x, c.y); !errors.Is(err, c.want) {
			t.Fatalf("Play(%d,%d): expected %v, got %v", c.x, c.y, c.want, err)
		}
	}
	after, _ := s.Get(gs.ID)
	if after.Game != before.Game {
		t.Fatalf("rejected moves changed the game")
	}
}

func TestPlayToCompletion(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)
	players := map[domain.Cell]string{domain.Black: "p1", domain.White: "p2"}

	var last *GameState
	for i := 0; i < 64; i++ {
		cur, _ := s.Get(gs.ID)
		if cur.Game.Over {
			break
		}
		x, y, ok := firstLegal(cur.Game)
		if !ok {
			t.Fatalf("settled game has no legal move: %+v", cur.Game)
		}
		st, err := s.Play(gs.ID, players[cur.Game.Turn], x, y)
		if err != nil {
			t.Fatalf("move %d at (%d,%d) failed: %v", i, x, y, err)
		}
		last = st
	}
	if last == nil || !last.Game.Over {
		t.Fatalf("expected game to finish")
	}
	if !strings.HasPrefix(last.Notice, NoticeFinished) || !strings.Contains(last.Notice, last.Game.Outcome().String()) {
		t.Fatalf("unexpected final notice %q", last.Notice)
	}
	if _, err := s.Play(gs.ID, "p1", 0, 0); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver after the end, got %v", err)
	}
}

func TestSubscribeAndBroadcast(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	ch, unsub, err := s.Subscribe(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	defer unsub()

	if _, err := s.Play(gs.ID, "p1", 2, 3); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	select {
	case st, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed unexpectedly")
		}
		if st.Game.Moves != 1 || st.Game.Board[3][2] != domain.Black {
			t.Fatalf("unexpected broadcast state: %+v", st.Game)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for broadcast")
	}
}

func TestSubscribeUnknownGame(t *testing.T) {
	s := newTestService(t)
	if _, _, err := s.Subscribe(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDropSlowSubscriber(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)

	// Slow subscriber: never read
	ctxSlow, cancelSlow := context.WithCancel(context.Background())
	defer cancelSlow()
	slowCh, _, _ := s.Subscribe(ctxSlow, gs.ID)

	ctxFast, cancelFast := context.WithTimeout(context.Background(), time.Second*2)
	defer cancelFast()
	fastCh, unsubFast, _ := s.Subscribe(ctxFast, gs.ID)
	defer unsubFast()

	if _, err := s.Play(gs.ID, "p1", 2, 3); err != nil {
		t.Fatalf("play1: %v", err)
	}
	<-fastCh
	if _, err := s.Play(gs.ID, "p2", 2, 2); err != nil {
		t.Fatalf("play2: %v", err)
	}
	<-fastCh

	// The slow channel holds the first update and is then closed
	if _, ok := <-slowCh; !ok {
		t.Fatalf("expected buffered first update")
	}
	select {
	case _, ok := <-slowCh:
		if ok {
			t.Fatalf("expected slow subscriber to be closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("slow subscriber was not dropped")
	}
}

func TestUnsubscribeOnContextDone(t *testing.T) {
	s := newTestService(t)
	gs := seated(t, s)
	ctx, cancel := context.WithCancel(context.Background())
	ch, _, _ := s.Subscribe(ctx, gs.ID)
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("subscription not closed after cancel")
	}
}

func firstLegal(g domain.Game) (int, int, bool) {
	m := g.LegalMoves()
	for y := 0; y < domain.Size; y++ {
		for x := 0; x < domain.Size; x++ {
			if m[y][x] {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
