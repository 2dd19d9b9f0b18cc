package engine

func multiplier(class RoundClass) int {
	switch class {
	case RoundSingle:
		return 200
	case RoundDouble:
		return 400
	}
	return 0
}

// rank is the 1-based position of the tile by ordinal within its category.
func rank(category *Category, tile *Tile) int {
	position := 1
	for _, other := range category.Tiles {
		if other.Ordinal < tile.Ordinal {
			position++
		}
	}
	return position
}

// Points is the face value printed on a basic-round tile. Final-round tiles
// have none.
func Points(round *Round, category *Category, tile *Tile) (int, bool) {
	if round.Class == RoundFinal {
		return 0, false
	}
	return multiplier(round.Class) * rank(category, tile), true
}

// TileValue is what a response on tile is worth to team. Daily doubles and
// the final round are worth the team's wager; other tiles their face value.
func TileValue(g *Game, team *Team, tile *Tile) int {
	_, category, round := g.Tile(tile.ID)
	if round == nil {
		return 0
	}
	if tile.IsDailyDouble || round.Class == RoundFinal {
		wager, ok := g.WagerOf(team.ID, tile.ID)
		if !ok {
			return 0
		}
		return wager.Amount
	}
	points, _ := Points(round, category, tile)
	return points
}
