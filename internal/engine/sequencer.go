package engine

// Step is the outcome of sequencing: either the next legal action type, or
// the marker that the round has nothing left to play.
type Step struct {
	Next ActionType
	// Round is the id of the completed round when Next is empty.
	Round uint
}

func nextStep(actionType ActionType) Step {
	return Step{Next: actionType}
}

func roundComplete(round *Round) Step {
	return Step{Round: round.ID}
}

// RoundComplete reports whether nothing further can happen in the round.
func (s Step) RoundComplete() bool {
	return s.Next == ""
}

// Sequence computes the next legal action type in round after prev. A nil
// prev means no action has been taken in the round yet.
func Sequence(g *Game, round *Round, prev Action) Step {
	if round.Class == RoundFinal {
		return sequenceFinal(g, round, prev)
	}
	return sequenceBasic(g, round, prev)
}

func sequenceBasic(g *Game, round *Round, prev Action) Step {
	if prev == nil {
		return nextStep(ActionChoice)
	}
	switch action := prev.(type) {
	case Buzz:
		return nextStep(ActionResponse)
	case Choice:
		tile, _, _ := g.Tile(action.TileID)
		if tile != nil && tile.IsDailyDouble {
			return nextStep(ActionWager)
		}
		return nextStep(ActionBuzz)
	case Wager:
		return nextStep(ActionResponse)
	case Response:
		tile, _, _ := g.Tile(action.TileID)
		// Only the wagering team may answer a daily double, so its response
		// closes the tile whatever the outcome.
		closed := action.IsCorrect ||
			(tile != nil && tile.IsDailyDouble) ||
			g.Count(ActionResponse, action.TileID) >= len(g.Teams)
		if !closed {
			return nextStep(ActionBuzz)
		}
		if g.unchosenTiles(round) > 0 {
			return nextStep(ActionChoice)
		}
		return roundComplete(round)
	}
	return roundComplete(round)
}

func sequenceFinal(g *Game, round *Round, prev Action) Step {
	if prev == nil {
		return nextStep(ActionWager)
	}
	switch action := prev.(type) {
	case Wager:
		if g.Count(ActionWager, action.TileID) < len(g.Teams) {
			return nextStep(ActionWager)
		}
		return nextStep(ActionResponse)
	case Response:
		if g.Count(ActionResponse, action.TileID) < len(g.Teams) {
			return nextStep(ActionResponse)
		}
		return roundComplete(round)
	}
	return roundComplete(round)
}
