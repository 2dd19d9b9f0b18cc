package engine

// IsOver reports whether every tile of a basic round has been chosen, or
// every team has responded to every tile of the final round.
func IsOver(g *Game, round *Round) bool {
	tiles := g.tileCount(round)
	if round.Class == RoundFinal {
		return g.countInRound(round, ActionResponse) == tiles*len(g.Teams)
	}
	return g.countInRound(round, ActionChoice) == tiles
}

// NextRound returns the round following round by ordinal, or nil when round
// is the last one.
func NextRound(g *Game, round *Round) *Round {
	var next *Round
	for i := range g.Rounds {
		candidate := &g.Rounds[i]
		if candidate.Ordinal <= round.Ordinal {
			continue
		}
		if next == nil || candidate.Ordinal < next.Ordinal {
			next = candidate
		}
	}
	return next
}
