package engine

// IsPermitted reports whether team may perform actionType on tile right now.
// The acting user is assumed to be an active player on team.
func IsPermitted(g *Game, team *Team, actionType ActionType, tile *Tile) bool {
	if team == nil || tile == nil {
		return false
	}
	_, _, round := g.Tile(tile.ID)
	if round == nil {
		return false
	}
	if round.Class == RoundFinal {
		return !g.HasActed(team.ID, actionType, tile.ID)
	}

	switch actionType {
	case ActionBuzz:
		inPlay := g.TileInPlay()
		return g.Count(ActionChoice, tile.ID) == 1 &&
			inPlay != nil && inPlay.ID == tile.ID &&
			!g.HasActed(team.ID, ActionBuzz, tile.ID)
	case ActionChoice:
		return team.ID == g.NextChooserID && g.Count(ActionChoice, tile.ID) == 0
	case ActionResponse:
		prerequisite := ActionBuzz
		if tile.IsDailyDouble {
			prerequisite = ActionWager
		}
		return g.HasActed(team.ID, prerequisite, tile.ID) &&
			!g.HasActed(team.ID, ActionResponse, tile.ID)
	case ActionWager:
		return g.HasActed(team.ID, ActionChoice, tile.ID) &&
			!g.HasActed(team.ID, ActionWager, tile.ID)
	}
	return false
}
