package engine

// Reveals lists the tile details that become visible once an action of the
// type is taken on a tile.
func Reveals(actionType ActionType, isDailyDouble bool) []Detail {
	switch actionType {
	case ActionChoice:
		if isDailyDouble {
			return []Detail{DetailIsDailyDouble}
		}
		return []Detail{DetailIsDailyDouble, DetailAnswer}
	case ActionWager:
		return []Detail{DetailAnswer}
	case ActionResponse:
		return []Detail{DetailQuestion}
	}
	return nil
}

// roundReveals are the facts shown when a round becomes the current round.
func roundReveals(round *Round) []Reveal {
	reveals := make([]Reveal, 0, len(round.Board.Categories))
	for _, category := range round.Board.Categories {
		reveals = append(reveals, Reveal{
			RoundID: round.ID,
			Level:   LevelCategory,
			LevelID: category.ID,
			Detail:  DetailName,
		})
	}
	return reveals
}
