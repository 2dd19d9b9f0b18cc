package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// newStartedGame builds a game whose tiles have predictable ids: round r
// (1-based) has id r, category c of round r has id r*10+c, and tile t of
// that category has id r*100+c*10+t. Every team has one active player whose
// user id is the team's 1-based position.
func newStartedGame(t *testing.T, teams, categories, tiles int) *Game {
	t.Helper()
	game := NewGame("ABCD", Options{
		OwnerID:           1,
		MaxTeams:          teams,
		MaxPlayersPerTeam: 2,
		Categories:        categories,
		TilesPerCategory:  tiles,
	}, nil, nil)
	assignTestIDs(game)
	game.StartAtFirstRound()
	if _, err := Open(game, 1); err != nil {
		t.Fatalf("open game: %v", err)
	}
	for i := range game.Teams {
		game.Teams[i].ID = uint(100 + i + 1)
	}
	for i := range game.Teams {
		user := User{ID: uint(i + 1), Name: fmt.Sprintf("player-%d", i+1), Active: true}
		if _, _, err := Join(game, user, game.Teams[i].Name); err != nil {
			t.Fatalf("join team: %v", err)
		}
	}
	if _, err := Begin(game, 1); err != nil {
		t.Fatalf("begin game: %v", err)
	}
	return game
}

func assignTestIDs(game *Game) {
	for r := range game.Rounds {
		round := &game.Rounds[r]
		round.ID = uint(r + 1)
		round.Board.ID = uint(r + 1)
		for c := range round.Board.Categories {
			category := &round.Board.Categories[c]
			category.ID = uint((r+1)*10 + c + 1)
			for k := range category.Tiles {
				tile := &category.Tiles[k]
				tile.ID = uint((r+1)*100 + (c+1)*10 + k + 1)
				tile.Trivia.ID = tile.ID
				tile.Trivia.Question = fmt.Sprintf("What is %d?", tile.ID)
			}
		}
	}
}

func markDailyDouble(t *testing.T, game *Game, tileID uint) {
	t.Helper()
	tile, _, _ := game.Tile(tileID)
	if tile == nil {
		t.Fatalf("tile %d not found", tileID)
	}
	tile.IsDailyDouble = true
}

func base(tileID, teamID uint) ActionBase {
	return ActionBase{TileID: tileID, TeamID: teamID, UserID: teamID - 100}
}

func correctAnswer(tileID uint) string {
	return fmt.Sprintf("what is %d?", tileID)
}

func submit(t *testing.T, game *Game, userID uint, action Action) *Changes {
	t.Helper()
	changes, err := Submit(game, userID, Request{MessageID: game.NextMessageID, Action: action}, testNow)
	if err != nil {
		t.Fatalf("submit %s by user %d: %v", action.Type(), userID, err)
	}
	return changes
}

func expectKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !errors.Is(err, &Error{Kind: kind}) {
		t.Fatalf("expected %s error, got %v (%s)", kind, err, KindOf(err))
	}
}
