package engine

import "testing"

func TestValidateRejectsInactiveGame(t *testing.T) {
	game := NewGame("ABCD", Options{OwnerID: 1, MaxTeams: 2}, nil, nil)
	_, err := Validate(game, 1, Request{Action: Choice{base(111, 101)}})
	expectKind(t, err, KindForbiddenAccess)
}

func TestValidateRequiresAction(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	_, err := Validate(game, 1, Request{MessageID: game.NextMessageID})
	expectKind(t, err, KindMissingField)
}

func TestValidateRejectsStaleMessageID(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	submit(t, game, 1, Choice{ActionBase{TileID: 111}})

	before := len(game.Actions)
	_, err := Submit(game, 1, Request{MessageID: 0, Action: Buzz{ActionBase{TileID: 111}}}, testNow)
	expectKind(t, err, KindInvalidRequest)
	if got := err.(*Error).Metadata["expected"]; got != "1" {
		t.Fatalf("expected next message id 1 in metadata, got %q", got)
	}
	if len(game.Actions) != before || game.NextMessageID != 1 {
		t.Fatalf("expected rejected request to leave the game unchanged")
	}
}

func TestValidateRejectsUnexpectedActionType(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	_, err := Validate(game, 1, Request{MessageID: 0, Action: Buzz{ActionBase{TileID: 111}}})
	expectKind(t, err, KindForbiddenAction)
	if got := err.(*Error).Metadata["expected"]; got != string(ActionChoice) {
		t.Fatalf("expected choice in metadata, got %q", got)
	}
}

func TestValidateRejectsTileOutsideCurrentRound(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	_, err := Validate(game, 1, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 211}}})
	expectKind(t, err, KindTileNotFound)

	_, err = Validate(game, 1, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 999}}})
	expectKind(t, err, KindTileNotFound)
}

func TestValidateRejectsNonMembers(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	_, err := Validate(game, 42, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 111}}})
	expectKind(t, err, KindForbiddenAccess)

	game.Teams[0].Players[0].Active = false
	_, err = Validate(game, 1, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 111}}})
	expectKind(t, err, KindForbiddenAccess)
}

func TestValidateRejectsActingOutOfTurn(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	_, err := Validate(game, 2, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 111}}})
	expectKind(t, err, KindActOutOfTurn)
}

func TestValidateRejectsChosenTile(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	submit(t, game, 1, Choice{ActionBase{TileID: 111}})
	submit(t, game, 1, Buzz{ActionBase{TileID: 111}})
	submit(t, game, 1, Response{ActionBase: ActionBase{TileID: 111}, Question: correctAnswer(111)})

	_, err := Validate(game, 1, Request{MessageID: game.NextMessageID, Action: Choice{ActionBase{TileID: 111}}})
	// The chooser check sees the tile as taken before the choice check does.
	expectKind(t, err, KindActOutOfTurn)
}

func TestValidateRejectsForbiddenWagers(t *testing.T) {
	for _, amount := range []int{14, 69, 88, 666, 1488} {
		team := &Team{Score: 100000}
		if IsPermittedWager(team, amount) {
			t.Fatalf("expected wager %d to be forbidden", amount)
		}
	}
	if IsPermittedWager(&Team{Score: 100}, 0) {
		t.Fatalf("expected zero wager to be refused")
	}
	if IsPermittedWager(&Team{Score: 100}, 100) {
		t.Fatalf("expected wager equal to score to be refused")
	}
	if !IsPermittedWager(&Team{Score: 100}, 99) {
		t.Fatalf("expected wager below score to be permitted")
	}
}

func TestValidateRejectsForbiddenWagerOnDailyDouble(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	markDailyDouble(t, game, 111)
	game.Teams[0].Score = 5000
	submit(t, game, 1, Choice{ActionBase{TileID: 111}})

	_, err := Validate(game, 1, Request{MessageID: game.NextMessageID, Action: Wager{ActionBase{TileID: 111}, 666}})
	expectKind(t, err, KindForbiddenWager)

	_, err = Validate(game, 1, Request{MessageID: game.NextMessageID, Action: Wager{ActionBase{TileID: 111}, 6000}})
	expectKind(t, err, KindForbiddenWager)
}

func TestValidateAdmitsLegalAction(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	admission, err := Validate(game, 1, Request{MessageID: 0, Action: Choice{ActionBase{TileID: 111}}})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if admission.Tile.ID != 111 || admission.Team.ID != 101 || admission.Player.UserID != 1 {
		t.Fatalf("unexpected admission %+v", admission)
	}
}
