package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// Notices shown to players. They are diagnostics, never game state.
const (
	NoticeCantPut  = "You can't put there."
	NoticeFinished = "Finished the game!"
)

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Black   string
	White   string
	Notice  string
	Created time.Time
	Updated time.Time
}

// Seat returns the side playerID sits on, or Empty for spectators.
func (gs GameState) Seat(playerID string) domain.Cell {
	switch {
	case playerID == "":
		return domain.Empty
	case gs.Black == playerID:
		return domain.Black
	case gs.White == playerID:
		return domain.White
	default:
		return domain.Empty
	}
}

type subscriber struct {
	ch        chan GameState
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	buffer int
	log    *zap.SugaredLogger
}

// NewService creates a service logging through log.
func NewService(log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: 1,
		log:    log,
	}
}

// SetSubscriberBuffer sets the channel capacity for new subscribers.
func (s *Service) SetSubscriberBuffer(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.buffer = n
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
	s.games[id] = gs
	s.log.Infow("game created", "game", id)
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Join assigns a seat to the player if available; returns Empty for spectators.
// Black moves first, so the first player to join plays Black.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	side := domain.Empty
	if gs.Black == "" || gs.Black == playerID {
		gs.Black = playerID
		side = domain.Black
	} else if gs.White == "" || gs.White == playerID {
		gs.White = playerID
		side = domain.White
	}
	gs.Updated = time.Now()
	s.log.Debugw("player joined", "game", id, "player", playerID, "side", side)
	cp := *gs
	return side, &cp, nil
}

// Play validates seat and turn, applies a move, advances the turn controller
// past forced skips, and broadcasts the new state.
func (s *Service) Play(id, playerID string, x, y int) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	seat := gs.Seat(playerID)
	if seat == domain.Empty {
		return nil, ErrNotAPlayer
	}
	if seat != gs.Game.Turn && !gs.Game.Over {
		return nil, ErrNotYourTurn
	}
	if err := gs.Game.Play(x, y); err != nil {
		if errors.Is(err, domain.ErrOccupied) || errors.Is(err, domain.ErrIllegalMove) {
			s.log.Infow(NoticeCantPut, "game", id, "side", seat, "x", x, "y", y)
		}
		return nil, err
	}
	white, black := gs.Game.Score()
	s.log.Debugw("move", "game", id, "side", seat, "x", x, "y", y, "white", white, "black", black)

	gs.Notice = ""
	for _, res := range gs.Game.Settle() {
		gs.Notice = s.noticeFor(id, res)
	}
	gs.Updated = time.Now()

	cp := *gs
	s.broadcastLocked(id, cp)
	return &cp, nil
}

// noticeFor logs a state-changing tick and returns its display text.
func (s *Service) noticeFor(id string, res domain.TickResult) string {
	if res.Ended {
		s.log.Infow(NoticeFinished, "game", id)
		summary := fmt.Sprintf("%d - %d, %s!", res.White, res.Black, res.Outcome)
		s.log.Infow(summary, "game", id, "white", res.White, "black", res.Black, "outcome", res.Outcome.String())
		return NoticeFinished + " " + summary
	}
	msg := fmt.Sprintf("Skip %s!", res.Skipped)
	s.log.Infow(msg, "game", id)
	return msg
}

// broadcastLocked fans cp out without blocking; slow subscribers are
// closed and dropped. Callers hold s.mu.
func (s *Service) broadcastLocked(id string, cp GameState) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- cp:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debugw("dropped slow subscribers", "game", id, "count", dropped)
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan GameState, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan GameState, s.buffer)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
