package engine

import "testing"

func TestPointsScaleWithRoundAndRank(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	cases := []struct {
		tile uint
		want int
	}{
		{111, 200},
		{113, 600},
		{121, 200},
		{211, 400},
		{213, 1200},
	}
	for _, tc := range cases {
		tile, category, round := game.Tile(tc.tile)
		got, ok := Points(round, category, tile)
		if !ok || got != tc.want {
			t.Fatalf("tile %d: expected %d points, got %d (ok=%v)", tc.tile, tc.want, got, ok)
		}
	}
}

func TestPointsUndefinedInFinalRound(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	tile, category, round := game.Tile(311)
	if _, ok := Points(round, category, tile); ok {
		t.Fatalf("expected final round tile to have no points")
	}
}

func TestTileValueUsesWager(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	markDailyDouble(t, game, 112)
	dailyDouble, _, _ := game.Tile(112)
	team := game.Team(101)

	if got := TileValue(game, team, dailyDouble); got != 0 {
		t.Fatalf("expected daily double without wager to be worth 0, got %d", got)
	}
	game.Actions = append(game.Actions, Choice{base(112, 101)}, Wager{base(112, 101), 350})
	if got := TileValue(game, team, dailyDouble); got != 350 {
		t.Fatalf("expected daily double worth wager 350, got %d", got)
	}

	final, _, _ := game.Tile(311)
	game.Actions = append(game.Actions, Wager{base(311, 101), 75})
	if got := TileValue(game, team, final); got != 75 {
		t.Fatalf("expected final tile worth wager 75, got %d", got)
	}

	plain, _, _ := game.Tile(122)
	if got := TileValue(game, team, plain); got != 400 {
		t.Fatalf("expected plain tile worth 400, got %d", got)
	}
}
