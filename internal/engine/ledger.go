package engine

import "sort"

// Round returns the round with the given id.
func (g *Game) Round(id uint) *Round {
	if id == 0 {
		return nil
	}
	for i := range g.Rounds {
		if g.Rounds[i].ID == id {
			return &g.Rounds[i]
		}
	}
	return nil
}

// FirstRound returns the round with the lowest ordinal.
func (g *Game) FirstRound() *Round {
	var first *Round
	for i := range g.Rounds {
		if first == nil || g.Rounds[i].Ordinal < first.Ordinal {
			first = &g.Rounds[i]
		}
	}
	return first
}

// Tile finds a tile anywhere on the game's boards, with the round and
// category holding it.
func (g *Game) Tile(id uint) (*Tile, *Category, *Round) {
	if id == 0 {
		return nil, nil, nil
	}
	for i := range g.Rounds {
		round := &g.Rounds[i]
		for j := range round.Board.Categories {
			category := &round.Board.Categories[j]
			for k := range category.Tiles {
				if category.Tiles[k].ID == id {
					return &category.Tiles[k], category, round
				}
			}
		}
	}
	return nil, nil, nil
}

func (g *Game) Team(id uint) *Team {
	if id == 0 {
		return nil
	}
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i]
		}
	}
	return nil
}

func (g *Game) TeamByName(name string) *Team {
	for i := range g.Teams {
		if g.Teams[i].Name == name {
			return &g.Teams[i]
		}
	}
	return nil
}

// Membership returns the team and player entry for a user, if any.
func (g *Game) Membership(userID uint) (*Team, *Player) {
	for i := range g.Teams {
		team := &g.Teams[i]
		for j := range team.Players {
			if team.Players[j].UserID == userID {
				return team, &team.Players[j]
			}
		}
	}
	return nil, nil
}

// Count returns how many actions of the type were recorded on the tile.
func (g *Game) Count(actionType ActionType, tileID uint) int {
	count := 0
	for _, action := range g.Actions {
		if action.Type() == actionType && action.Base().TileID == tileID {
			count++
		}
	}
	return count
}

// HasActed reports whether the team recorded an action of the type on the tile.
func (g *Game) HasActed(teamID uint, actionType ActionType, tileID uint) bool {
	return g.find(teamID, actionType, tileID) != nil
}

func (g *Game) find(teamID uint, actionType ActionType, tileID uint) Action {
	for _, action := range g.Actions {
		base := action.Base()
		if action.Type() == actionType && base.TileID == tileID && base.TeamID == teamID {
			return action
		}
	}
	return nil
}

// WagerOf returns the team's wager on the tile.
func (g *Game) WagerOf(teamID uint, tileID uint) (Wager, bool) {
	wager, ok := g.find(teamID, ActionWager, tileID).(Wager)
	return wager, ok
}

// TileInPlay returns the most recently chosen tile of the current round.
func (g *Game) TileInPlay() *Tile {
	round := g.Round(g.NextRoundID)
	if round == nil {
		return nil
	}
	for i := len(g.Actions) - 1; i >= 0; i-- {
		action := g.Actions[i]
		if action.Type() != ActionChoice && round.Class != RoundFinal {
			continue
		}
		tile, _, owner := g.Tile(action.Base().TileID)
		if owner != nil && owner.ID == round.ID {
			return tile
		}
	}
	if round.Class == RoundFinal {
		return firstTile(round)
	}
	return nil
}

// IsRevealed reports whether the detail of the entity has been revealed.
func (g *Game) IsRevealed(level Level, levelID uint, detail Detail) bool {
	for _, reveal := range g.Reveals {
		if reveal.Level == level && reveal.LevelID == levelID && reveal.Detail == detail {
			return true
		}
	}
	return false
}

func (g *Game) tileCount(round *Round) int {
	count := 0
	for _, category := range round.Board.Categories {
		count += len(category.Tiles)
	}
	return count
}

func (g *Game) unchosenTiles(round *Round) int {
	remaining := 0
	for _, category := range round.Board.Categories {
		for _, tile := range category.Tiles {
			if g.Count(ActionChoice, tile.ID) == 0 {
				remaining++
			}
		}
	}
	return remaining
}

func (g *Game) countInRound(round *Round, actionType ActionType) int {
	count := 0
	for _, action := range g.Actions {
		if action.Type() != actionType {
			continue
		}
		if _, _, owner := g.Tile(action.Base().TileID); owner != nil && owner.ID == round.ID {
			count++
		}
	}
	return count
}

func firstTile(round *Round) *Tile {
	for i := range round.Board.Categories {
		if len(round.Board.Categories[i].Tiles) > 0 {
			return &round.Board.Categories[i].Tiles[0]
		}
	}
	return nil
}

// lowestScorer picks the team with the lowest score; ties go to the team
// that comes first.
func (g *Game) lowestScorer() *Team {
	var lowest *Team
	for i := range g.Teams {
		if lowest == nil || g.Teams[i].Score < lowest.Score {
			lowest = &g.Teams[i]
		}
	}
	return lowest
}

// Clone returns a deep copy that can be mutated without affecting g.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Rounds = make([]Round, len(g.Rounds))
	for i, round := range g.Rounds {
		categories := make([]Category, len(round.Board.Categories))
		for j, category := range round.Board.Categories {
			category.Tiles = append([]Tile(nil), category.Tiles...)
			categories[j] = category
		}
		round.Board.Categories = categories
		clone.Rounds[i] = round
	}
	clone.Teams = make([]Team, len(g.Teams))
	for i, team := range g.Teams {
		team.Players = append([]Player(nil), team.Players...)
		clone.Teams[i] = team
	}
	clone.Actions = append([]Action(nil), g.Actions...)
	clone.Reveals = append([]Reveal(nil), g.Reveals...)
	return &clone
}

// SortBoard orders rounds, categories and tiles by ordinal.
func (g *Game) SortBoard() {
	sort.SliceStable(g.Rounds, func(i, j int) bool {
		return g.Rounds[i].Ordinal < g.Rounds[j].Ordinal
	})
	for i := range g.Rounds {
		categories := g.Rounds[i].Board.Categories
		sort.SliceStable(categories, func(a, b int) bool {
			return categories[a].Ordinal < categories[b].Ordinal
		})
		for j := range categories {
			tiles := categories[j].Tiles
			sort.SliceStable(tiles, func(a, b int) bool {
				return tiles[a].Ordinal < tiles[b].Ordinal
			})
		}
	}
}
