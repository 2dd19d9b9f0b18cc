package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"trivia/internal/engine"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	errCodeInUse     = errors.New("game code in use")
	errRunnerStopped = errors.New("game runner stopped")
)

var tracer = otel.Tracer("trivia/internal/server")

// mutation changes a working copy of the game. Returning nil changes
// means there is nothing to commit.
type mutation func(game *engine.Game) (*engine.Changes, error)

type job struct {
	ctx    context.Context
	name   string
	mutate mutation
	done   chan jobResult
}

type jobResult struct {
	game    *engine.Game
	changes *engine.Changes
	err     error
}

// gameRunner serialises every mutation of one game. Jobs run in arrival
// order on a clone of the committed game; the clone replaces the committed
// game only once it is persisted.
type gameRunner struct {
	code     string
	jobs     chan job
	current  atomic.Pointer[engine.Game]
	persist  persistFunc
	publish  publishFunc
	quit     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func newGameRunner(game *engine.Game, queueSize int, persist persistFunc, publish publishFunc) *gameRunner {
	r := &gameRunner{
		code:    game.Code,
		jobs:    make(chan job, queueSize),
		persist: persist,
		publish: publish,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	r.current.Store(game)
	return r
}

// Current returns the committed game. Callers must not modify it.
func (r *gameRunner) Current() *engine.Game {
	return r.current.Load()
}

// Submit queues a mutation and waits for its outcome. A full queue is
// rejected at once with engine.KindBusy.
func (r *gameRunner) Submit(ctx context.Context, name string, mutate mutation) (*engine.Game, *engine.Changes, error) {
	select {
	case <-r.quit:
		return nil, nil, errRunnerStopped
	default:
	}
	done := make(chan jobResult, 1)
	select {
	case r.jobs <- job{ctx: ctx, name: name, mutate: mutate, done: done}:
	default:
		log.Printf("game queue full code=%s job=%s", r.code, name)
		return nil, nil, engine.NewError(engine.KindBusy, "game is busy, try again")
	}
	select {
	case result := <-done:
		return result.game, result.changes, result.err
	case <-r.stopped:
		select {
		case result := <-done:
			return result.game, result.changes, result.err
		default:
			return nil, nil, errRunnerStopped
		}
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

func (r *gameRunner) run() {
	defer close(r.stopped)
	for {
		select {
		case j := <-r.jobs:
			r.handle(j)
		case <-r.quit:
			for {
				select {
				case j := <-r.jobs:
					r.handle(j)
				default:
					return
				}
			}
		}
	}
}

func (r *gameRunner) stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

func (r *gameRunner) handle(j job) {
	ctx, span := tracer.Start(j.ctx, "game."+j.name, trace.WithAttributes(
		attribute.String("game.code", r.code),
	))
	defer span.End()

	result := r.apply(ctx, j)
	if result.err != nil {
		span.RecordError(result.err)
		span.SetStatus(codes.Error, result.err.Error())
	} else {
		span.SetAttributes(attribute.Int64("game.message_id", result.game.NextMessageID))
	}
	j.done <- result
}

func (r *gameRunner) apply(ctx context.Context, j job) (result jobResult) {
	committed := r.current.Load()
	if err := ctx.Err(); err != nil {
		return jobResult{err: err}
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("game job panicked code=%s job=%s panic=%v", r.code, j.name, recovered)
			result = jobResult{err: fmt.Errorf("game job %s panicked: %v", j.name, recovered)}
		}
	}()

	working := committed.Clone()
	changes, err := j.mutate(working)
	if err != nil {
		return jobResult{err: err}
	}
	if changes == nil {
		return jobResult{game: committed}
	}
	if err := r.persist(ctx, working, changes); err != nil {
		log.Printf("game persist failed code=%s job=%s error=%v", r.code, j.name, err)
		return jobResult{err: err}
	}
	r.current.Store(working)
	if r.publish != nil {
		r.publish(working)
	}
	return jobResult{game: working, changes: changes}
}
