package server

import (
	"sync"
	"sync/atomic"

	"trivia/internal/engine"
)

// memoryIDs hands out entity ids when the server runs without a database.
type memoryIDs struct {
	next atomic.Uint64
}

func newMemoryIDs() *memoryIDs {
	return &memoryIDs{}
}

func (m *memoryIDs) id() uint {
	return uint(m.next.Add(1))
}

func (m *memoryIDs) assignGame(game *engine.Game) {
	game.ID = m.id()
	for i := range game.Rounds {
		round := &game.Rounds[i]
		round.ID = m.id()
		round.Board.ID = m.id()
		for j := range round.Board.Categories {
			category := &round.Board.Categories[j]
			category.ID = m.id()
			for k := range category.Tiles {
				category.Tiles[k].ID = m.id()
				category.Tiles[k].Trivia.ID = m.id()
			}
		}
	}
	game.StartAtFirstRound()
}

func (m *memoryIDs) assignTeams(game *engine.Game, changes *engine.Changes) {
	for _, index := range changes.NewTeams {
		game.Teams[index].ID = m.id()
	}
}

type memoryUsers struct {
	mu    sync.Mutex
	next  uint
	users map[uint]engine.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{next: 1, users: make(map[uint]engine.User)}
}

func (m *memoryUsers) Create(name string) engine.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := engine.User{ID: m.next, Name: name, Active: true}
	m.next++
	m.users[user.ID] = user
	return user
}

func (m *memoryUsers) Get(id uint) (engine.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	return user, ok
}
