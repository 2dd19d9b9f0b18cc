package server

import (
	"context"
	"errors"

	"trivia/internal/db"
	"trivia/internal/engine"
)

func (s *Server) persist(ctx context.Context, game *engine.Game, changes *engine.Changes) error {
	if s.db == nil {
		s.ids.assignTeams(game, changes)
		return nil
	}
	return db.ApplyChanges(s.db.WithContext(ctx), game, changes)
}

func (s *Server) loadGame(ctx context.Context, code string) (*engine.Game, error) {
	if s.db == nil {
		return nil, engine.NewError(engine.KindNotFound, "game not found")
	}
	return db.LoadGame(s.db.WithContext(ctx), code)
}

func (s *Server) persistNewGame(ctx context.Context, game *engine.Game) error {
	if s.db == nil {
		if s.store.Has(game.Code) {
			return errCodeInUse
		}
		s.ids.assignGame(game)
		return nil
	}
	err := db.CreateGame(s.db.WithContext(ctx), game)
	if errors.Is(err, db.ErrCodeInUse) {
		return errCodeInUse
	}
	return err
}

func (s *Server) createUser(ctx context.Context, name string) (engine.User, error) {
	if s.db == nil {
		return s.users.Create(name), nil
	}
	return db.CreateUser(s.db.WithContext(ctx), name)
}

func (s *Server) findUser(ctx context.Context, id uint) (engine.User, error) {
	if s.db == nil {
		user, ok := s.users.Get(id)
		if !ok {
			return engine.User{}, engine.NewError(engine.KindNotFound, "user not found")
		}
		return user, nil
	}
	return db.GetUser(s.db.WithContext(ctx), id)
}

func (s *Server) libraryClues(ctx context.Context) ([]engine.Clue, error) {
	if s.db == nil {
		return nil, nil
	}
	clues, err := db.LibraryClues(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	s.shuffle(len(clues), func(i, j int) { clues[i], clues[j] = clues[j], clues[i] })
	return clues, nil
}
