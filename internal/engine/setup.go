package engine

import (
	"fmt"
	"math/rand/v2"
)

const (
	placeholderAnswer   = "Answer"
	placeholderQuestion = "Question?"
)

// Options configures a new game and the shape of its boards.
type Options struct {
	Name              string
	OwnerID           uint
	MaxTeams          int
	MaxPlayersPerTeam int
	Categories        int
	TilesPerCategory  int
}

// Clue is a trivia entry available to the board builder.
type Clue struct {
	Category string
	Trivia   Trivia
}

// NewGame builds an editable game with a single, a double and a final round.
// Boards are filled from clues grouped by category, in the order given;
// placeholder trivia fills whatever the clues cannot. Entity ids are left
// zero for the store to assign.
func NewGame(code string, opts Options, clues []Clue, rng *rand.Rand) *Game {
	if opts.Categories <= 0 {
		opts.Categories = 6
	}
	if opts.TilesPerCategory <= 0 {
		opts.TilesPerCategory = 5
	}
	if opts.Name == "" {
		opts.Name = "Untitled Game"
	}
	deck := newDeck(clues)
	game := &Game{
		Code:              code,
		Name:              opts.Name,
		OwnerID:           opts.OwnerID,
		MaxTeams:          opts.MaxTeams,
		MaxPlayersPerTeam: opts.MaxPlayersPerTeam,
		Status:            StatusEditable,
	}
	game.Rounds = []Round{
		buildRound(RoundSingle, 0, opts.Categories, opts.TilesPerCategory, 1, deck, rng),
		buildRound(RoundDouble, 1, opts.Categories, opts.TilesPerCategory, 2, deck, rng),
		buildRound(RoundFinal, 2, 1, 1, 0, deck, rng),
	}
	return game
}

type deckGroup struct {
	name   string
	trivia []Trivia
}

type deck struct {
	groups []deckGroup
}

func newDeck(clues []Clue) *deck {
	d := &deck{}
	index := map[string]int{}
	for _, clue := range clues {
		i, ok := index[clue.Category]
		if !ok {
			i = len(d.groups)
			index[clue.Category] = i
			d.groups = append(d.groups, deckGroup{name: clue.Category})
		}
		d.groups[i].trivia = append(d.groups[i].trivia, clue.Trivia)
	}
	return d
}

// take removes the first category with at least size clues.
func (d *deck) take(size int) (deckGroup, bool) {
	for i, group := range d.groups {
		if len(group.trivia) >= size {
			d.groups = append(d.groups[:i], d.groups[i+1:]...)
			group.trivia = group.trivia[:size]
			return group, true
		}
	}
	return deckGroup{}, false
}

func buildRound(class RoundClass, ordinal, categories, tiles, dailyDoubles int, d *deck, rng *rand.Rand) Round {
	round := Round{Class: class, Ordinal: ordinal}
	for i := 0; i < categories; i++ {
		group, ok := d.take(tiles)
		if !ok {
			group = deckGroup{name: fmt.Sprintf("Category %d", i)}
		}
		category := Category{Name: group.name, Ordinal: i}
		for j := 0; j < tiles; j++ {
			trivia := Trivia{Answer: placeholderAnswer, Question: placeholderQuestion}
			if j < len(group.trivia) {
				trivia = group.trivia[j]
			}
			category.Tiles = append(category.Tiles, Tile{Ordinal: j, Trivia: trivia})
		}
		round.Board.Categories = append(round.Board.Categories, category)
	}
	placeDailyDoubles(&round, dailyDoubles, rng)
	return round
}

func placeDailyDoubles(round *Round, count int, rng *rand.Rand) {
	var slots []*Tile
	for i := range round.Board.Categories {
		for j := range round.Board.Categories[i].Tiles {
			slots = append(slots, &round.Board.Categories[i].Tiles[j])
		}
	}
	if count > len(slots) {
		count = len(slots)
	}
	if rng == nil || count <= 0 {
		return
	}
	rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
	for _, tile := range slots[:count] {
		tile.IsDailyDouble = true
	}
}

// StartAtFirstRound points the game at its earliest round.
func (g *Game) StartAtFirstRound() {
	if first := g.FirstRound(); first != nil {
		g.NextRoundID = first.ID
	}
}

// Open creates the game's teams and lets players join.
func Open(g *Game, userID uint) (*Changes, error) {
	if g.OwnerID != userID {
		return nil, NewError(KindForbiddenAccess, "only the owner can open the game")
	}
	if g.Status != StatusEditable {
		return nil, NewError(KindForbiddenAccess, "game is not editable")
	}
	changes := &Changes{Events: []string{EventGameOpened}}
	for i := 0; i < g.MaxTeams; i++ {
		g.Teams = append(g.Teams, Team{Name: fmt.Sprintf("Team %d", i+1)})
		changes.NewTeams = append(changes.NewTeams, len(g.Teams)-1)
	}
	g.Status = StatusJoinable
	return changes, nil
}

// Join assigns the user to the named team. With no team named, a user
// already on a team stays there and a new user goes to the least populated
// team with room.
func Join(g *Game, user User, teamName string) (*Team, *Changes, error) {
	if g.Status != StatusJoinable {
		return nil, nil, NewError(KindForbiddenAccess, "game is not joinable")
	}
	if !user.Active {
		return nil, nil, NewError(KindForbiddenAccess, "user is not active")
	}
	current, _ := g.Membership(user.ID)

	var target *Team
	if teamName == "" {
		if current != nil {
			return current, &Changes{}, nil
		}
		for i := range g.Teams {
			team := &g.Teams[i]
			if !g.hasRoom(team) {
				continue
			}
			if target == nil || len(team.Players) < len(target.Players) {
				target = team
			}
		}
		if target == nil {
			return nil, nil, NewError(KindTeamAtMaxCapacity, "all teams are full")
		}
	} else {
		target = g.TeamByName(teamName)
		if target == nil {
			return nil, nil, NewError(KindNotFound, "team not found")
		}
		if current != nil && current.ID == target.ID {
			return current, &Changes{}, nil
		}
		if !g.hasRoom(target) {
			return nil, nil, NewError(KindTeamAtMaxCapacity, fmt.Sprintf("team %s is full", target.Name))
		}
	}

	if current != nil {
		removePlayer(current, user.ID)
	}
	player := Player{UserID: user.ID, Name: user.Name, Active: user.Active}
	target.Players = append(target.Players, player)
	changes := &Changes{
		Events:  []string{EventPlayerJoined},
		Members: []Membership{{TeamID: target.ID, Player: player}},
	}
	return target, changes, nil
}

func (g *Game) hasRoom(team *Team) bool {
	return g.MaxPlayersPerTeam <= 0 || len(team.Players) < g.MaxPlayersPerTeam
}

func removePlayer(team *Team, userID uint) {
	kept := team.Players[:0]
	for _, player := range team.Players {
		if player.UserID != userID {
			kept = append(kept, player)
		}
	}
	team.Players = kept
}

// Begin starts play. Teams nobody joined are dropped so that "every team"
// means every team that can act.
func Begin(g *Game, userID uint) (*Changes, error) {
	if g.OwnerID != userID {
		return nil, NewError(KindForbiddenAccess, "only the owner can begin the game")
	}
	if g.Status != StatusJoinable {
		return nil, NewError(KindForbiddenAccess, "game is not joinable")
	}
	round := g.Round(g.NextRoundID)
	if round == nil {
		return nil, NewError(KindNotFound, "game has no rounds")
	}

	changes := &Changes{Events: []string{EventGameBegun}}
	kept := make([]Team, 0, len(g.Teams))
	for _, team := range g.Teams {
		if len(team.Players) == 0 {
			changes.RemovedTeams = append(changes.RemovedTeams, team.ID)
			continue
		}
		kept = append(kept, team)
	}
	if len(kept) == 0 {
		return nil, NewError(KindForbiddenAccess, "no team has players")
	}
	g.Teams = kept

	g.Status = StatusStarted
	g.NextChooserID = g.Teams[0].ID
	g.NextActionType = Sequence(g, round, nil).Next
	for _, reveal := range roundReveals(round) {
		changes.reveal(g, reveal)
	}
	return changes, nil
}
