package server

import (
	"context"
	"errors"
	"log"
	"sync"

	"trivia/internal/engine"

	"golang.org/x/sync/singleflight"
)

var errStoreClosed = errors.New("store closed")

type (
	persistFunc func(ctx context.Context, game *engine.Game, changes *engine.Changes) error
	loadFunc    func(ctx context.Context, code string) (*engine.Game, error)
	publishFunc func(game *engine.Game)
)

// Store owns one runner per live game code. Games created elsewhere are
// loaded on first use, once, however many requests ask for them together.
type Store struct {
	mu        sync.Mutex
	runners   map[string]*gameRunner
	loads     singleflight.Group
	queueSize int
	persist   persistFunc
	load      loadFunc
	publish   publishFunc
	closed    bool
	wg        sync.WaitGroup
}

func NewStore(queueSize int, persist persistFunc, load loadFunc, publish publishFunc) *Store {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Store{
		runners:   make(map[string]*gameRunner),
		queueSize: queueSize,
		persist:   persist,
		load:      load,
		publish:   publish,
	}
}

// Add starts a runner for a game whose creation is already committed.
func (s *Store) Add(game *engine.Game) (*gameRunner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errStoreClosed
	}
	if _, exists := s.runners[game.Code]; exists {
		return nil, errCodeInUse
	}
	return s.startLocked(game), nil
}

// Has reports whether a runner for code is live.
func (s *Store) Has(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runners[code]
	return ok
}

// Runner returns the runner for code, loading the game if needed.
func (s *Store) Runner(ctx context.Context, code string) (*gameRunner, error) {
	s.mu.Lock()
	runner, ok := s.runners[code]
	closed := s.closed
	s.mu.Unlock()
	if ok {
		return runner, nil
	}
	if closed {
		return nil, errStoreClosed
	}

	value, err, _ := s.loads.Do(code, func() (any, error) {
		s.mu.Lock()
		if runner, ok := s.runners[code]; ok {
			s.mu.Unlock()
			return runner, nil
		}
		s.mu.Unlock()

		game, err := s.load(ctx, code)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return nil, errStoreClosed
		}
		if runner, ok := s.runners[code]; ok {
			return runner, nil
		}
		log.Printf("game loaded code=%s message_id=%d", game.Code, game.NextMessageID)
		return s.startLocked(game), nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*gameRunner), nil
}

// Snapshot returns the last committed state of the game.
func (s *Store) Snapshot(ctx context.Context, code string) (*engine.Game, error) {
	runner, err := s.Runner(ctx, code)
	if err != nil {
		return nil, err
	}
	return runner.Current(), nil
}

func (s *Store) startLocked(game *engine.Game) *gameRunner {
	runner := newGameRunner(game, s.queueSize, s.persist, s.publish)
	s.runners[game.Code] = runner
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		runner.run()
	}()
	return runner
}

// Close stops every runner. Jobs already queued still run.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for _, runner := range s.runners {
			runner.stop()
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
