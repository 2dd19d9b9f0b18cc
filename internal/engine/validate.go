package engine

import (
	"fmt"
	"strconv"
)

// forbiddenWagers are amounts that are never accepted, whatever the score.
var forbiddenWagers = map[int]struct{}{
	14:   {},
	69:   {},
	88:   {},
	666:  {},
	1488: {},
}

// Admission is the outcome of a successful validation: the tile the request
// targets and the team and player acting on it.
type Admission struct {
	Tile   *Tile
	Team   *Team
	Player *Player
}

// IsActive reports whether the game is being played.
func IsActive(g *Game) bool {
	return g.Status == StatusStarted
}

// IsPermittedWager reports whether the team may stake amount.
func IsPermittedWager(team *Team, amount int) bool {
	if _, forbidden := forbiddenWagers[amount]; forbidden {
		return false
	}
	return amount > 0 && amount < team.Score
}

// Validate decides whether the user's request is admitted. Checks run in a
// fixed order and the first failure is returned.
func Validate(g *Game, userID uint, req Request) (*Admission, error) {
	if g == nil || !IsActive(g) {
		return nil, NewError(KindForbiddenAccess, "game is not active")
	}
	if req.Action == nil {
		return nil, NewError(KindMissingField, "action is required")
	}
	if req.MessageID != g.NextMessageID {
		return nil, WithMetadata(KindInvalidRequest, "message id is not next", map[string]string{
			"expected": strconv.FormatInt(g.NextMessageID, 10),
		})
	}
	actionType := req.Action.Type()
	if actionType != g.NextActionType {
		return nil, WithMetadata(KindForbiddenAction, fmt.Sprintf("expected %s action", g.NextActionType), map[string]string{
			"expected": string(g.NextActionType),
		})
	}

	tile, _, round := g.Tile(req.Action.Base().TileID)
	if tile == nil || round.ID != g.NextRoundID {
		return nil, NewError(KindTileNotFound, "tile not found in current round")
	}

	team, player := g.Membership(userID)
	if team == nil || player == nil || !player.Active {
		return nil, NewError(KindForbiddenAccess, "user is not a player in this game")
	}

	if !IsPermitted(g, team, actionType, tile) {
		return nil, NewError(KindActOutOfTurn, fmt.Sprintf("team %s may not %s now", team.Name, actionType))
	}

	switch action := req.Action.(type) {
	case Choice:
		if g.Count(ActionChoice, tile.ID) != 0 {
			return nil, NewError(KindTileAlreadyChosen, "tile already chosen")
		}
	case Wager:
		if !IsPermittedWager(team, action.Amount) {
			return nil, NewError(KindForbiddenWager, fmt.Sprintf("wager of %d is not permitted", action.Amount))
		}
	}

	return &Admission{Tile: tile, Team: team, Player: player}, nil
}
