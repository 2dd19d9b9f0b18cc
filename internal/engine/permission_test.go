package engine

import "testing"

func TestPermittedOnlyIfChoiceMadeByChoosingTeam(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	tile, _, _ := game.Tile(111)
	if !IsPermitted(game, game.Team(101), ActionChoice, tile) {
		t.Fatalf("expected chooser to be permitted")
	}
	if IsPermitted(game, game.Team(102), ActionChoice, tile) {
		t.Fatalf("expected other team to be refused")
	}
}

func TestPermittedOnlyIfChoiceIsForAvailableTile(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	game.Actions = append(game.Actions, Choice{base(112, 101)})
	chosen, _, _ := game.Tile(112)
	if IsPermitted(game, game.Team(101), ActionChoice, chosen) {
		t.Fatalf("expected chosen tile to be refused")
	}
}

func TestPermittedOnlyIfBuzzForTileInPlay(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	open, _, _ := game.Tile(111)
	if IsPermitted(game, game.Team(101), ActionBuzz, open) {
		t.Fatalf("expected buzz on unchosen tile to be refused")
	}
	game.Actions = append(game.Actions, Choice{base(111, 102)})
	if !IsPermitted(game, game.Team(101), ActionBuzz, open) {
		t.Fatalf("expected buzz on chosen tile to be permitted")
	}

	game.Actions = append(game.Actions, Choice{base(112, 102)})
	if IsPermitted(game, game.Team(101), ActionBuzz, open) {
		t.Fatalf("expected buzz on a tile no longer in play to be refused")
	}
}

func TestPermittedOnlyIfBuzzByTeamNotAlreadyBuzzed(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	tile, _, _ := game.Tile(111)
	game.Actions = append(game.Actions, Choice{base(111, 102)}, Buzz{base(111, 101)})
	if IsPermitted(game, game.Team(101), ActionBuzz, tile) {
		t.Fatalf("expected second buzz to be refused")
	}
	if !IsPermitted(game, game.Team(102), ActionBuzz, tile) {
		t.Fatalf("expected first buzz of other team to be permitted")
	}
}

func TestPermittedOnlyIfResponseByTeamThatBuzzed(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	tile, _, _ := game.Tile(111)
	game.Actions = append(game.Actions, Choice{base(111, 102)}, Buzz{base(111, 101)})
	if !IsPermitted(game, game.Team(101), ActionResponse, tile) {
		t.Fatalf("expected buzzing team to be permitted")
	}
	if IsPermitted(game, game.Team(102), ActionResponse, tile) {
		t.Fatalf("expected team that did not buzz to be refused")
	}
}

func TestPermittedOnlyIfResponseByTeamThatWagered(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	markDailyDouble(t, game, 111)
	tile, _, _ := game.Tile(111)
	game.Actions = append(game.Actions, Choice{base(111, 101)}, Wager{base(111, 101), 100})
	if !IsPermitted(game, game.Team(101), ActionResponse, tile) {
		t.Fatalf("expected wagering team to be permitted")
	}
	if IsPermitted(game, game.Team(102), ActionResponse, tile) {
		t.Fatalf("expected other team to be refused")
	}
}

func TestPermittedOnlyIfWagerByChoosingTeam(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	markDailyDouble(t, game, 111)
	tile, _, _ := game.Tile(111)
	game.Actions = append(game.Actions, Choice{base(111, 101)})
	if !IsPermitted(game, game.Team(101), ActionWager, tile) {
		t.Fatalf("expected choosing team to be permitted")
	}
	if IsPermitted(game, game.Team(102), ActionWager, tile) {
		t.Fatalf("expected other team to be refused")
	}
}

func TestPermittedInFinalRoundOnlyOncePerTeam(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	tile, _, _ := game.Tile(311)
	game.Actions = append(game.Actions, Wager{base(311, 101), 100}, Response{ActionBase: base(311, 102)})

	if IsPermitted(game, game.Team(101), ActionWager, tile) {
		t.Fatalf("expected repeated final wager to be refused")
	}
	if !IsPermitted(game, game.Team(102), ActionWager, tile) {
		t.Fatalf("expected first final wager to be permitted")
	}
	if IsPermitted(game, game.Team(102), ActionResponse, tile) {
		t.Fatalf("expected repeated final response to be refused")
	}
	if !IsPermitted(game, game.Team(101), ActionResponse, tile) {
		t.Fatalf("expected first final response to be permitted")
	}
}
