package engine

import (
	"fmt"
	"strings"
	"time"
)

const (
	EventGameCreated     = "game_created"
	EventGameOpened      = "game_opened"
	EventPlayerJoined    = "player_joined"
	EventGameBegun       = "game_begun"
	EventActionPerformed = "action_performed"
	EventRoundAdvanced   = "round_advanced"
	EventGameFinished    = "game_finished"
)

// Membership places a user on a team.
type Membership struct {
	TeamID uint
	Player Player
}

// Changes describes what one committed operation added to or changed in a
// game, so a store can persist it without diffing. The game's own fields are
// always rewritten.
type Changes struct {
	Events  []string
	Actions []Action
	Reveals []Reveal
	// Scores lists the teams whose score changed.
	Scores []uint
	// NewTeams lists indexes into Game.Teams of teams created by the operation.
	NewTeams     []int
	RemovedTeams []uint
	Members      []Membership
}

func (c *Changes) reveal(g *Game, reveal Reveal) {
	if g.IsRevealed(reveal.Level, reveal.LevelID, reveal.Detail) {
		return
	}
	g.Reveals = append(g.Reveals, reveal)
	c.Reveals = append(c.Reveals, reveal)
}

// Submit validates the request and performs it when admitted.
func Submit(g *Game, userID uint, req Request, now time.Time) (*Changes, error) {
	admission, err := Validate(g, userID, req)
	if err != nil {
		return nil, err
	}
	return Perform(g, admission, req.Action, now)
}

// Perform records an admitted action and advances the game. It mutates g;
// callers that need the previous state must pass a clone.
func Perform(g *Game, admission *Admission, action Action, now time.Time) (*Changes, error) {
	tile, team, player := admission.Tile, admission.Team, admission.Player
	_, _, round := g.Tile(tile.ID)
	if round == nil {
		return nil, NewError(KindTileNotFound, "tile not found")
	}

	recorded, err := record(action, tile, team, player, g.NextMessageID, now)
	if err != nil {
		return nil, err
	}
	g.Actions = append(g.Actions, recorded)
	changes := &Changes{
		Events:  []string{EventActionPerformed},
		Actions: []Action{recorded},
	}
	for _, detail := range Reveals(recorded.Type(), tile.IsDailyDouble) {
		changes.reveal(g, Reveal{RoundID: round.ID, Level: LevelTile, LevelID: tile.ID, Detail: detail})
	}

	step := Sequence(g, round, recorded)
	if response, ok := recorded.(Response); ok {
		value := TileValue(g, team, tile)
		if response.IsCorrect {
			team.Score += value
			if round.Class != RoundFinal {
				g.NextChooserID = team.ID
			}
		} else {
			team.Score -= value
		}
		changes.Scores = append(changes.Scores, team.ID)

		if step.RoundComplete() && IsOver(g, round) {
			if next := NextRound(g, round); next != nil {
				g.NextRoundID = next.ID
				if lowest := g.lowestScorer(); lowest != nil {
					g.NextChooserID = lowest.ID
				}
				for _, reveal := range roundReveals(next) {
					changes.reveal(g, reveal)
				}
				changes.Events = append(changes.Events, EventRoundAdvanced)
				step = Sequence(g, next, nil)
			}
		}
	}

	if step.RoundComplete() {
		g.NextActionType = ""
		g.Status = StatusFinished
		changes.Events = append(changes.Events, EventGameFinished)
	} else {
		g.NextActionType = step.Next
	}
	g.NextMessageID++
	return changes, nil
}

func record(action Action, tile *Tile, team *Team, player *Player, messageID int64, now time.Time) (Action, error) {
	base := ActionBase{
		TileID:    tile.ID,
		TeamID:    team.ID,
		UserID:    player.UserID,
		MessageID: messageID,
		CreatedAt: now,
	}
	switch a := action.(type) {
	case Choice, Buzz, Wager:
		return a.withBase(base), nil
	case Response:
		a.IsCorrect = IsCorrect(tile, a.Question)
		return a.withBase(base), nil
	}
	return nil, NewError(KindInvalidRequest, fmt.Sprintf("unsupported action %T", action))
}

// IsCorrect compares a submitted response with the tile's question,
// ignoring case and surrounding or repeated whitespace.
func IsCorrect(tile *Tile, question string) bool {
	expected := normalizeText(tile.Trivia.Question)
	return expected != "" && strings.EqualFold(expected, normalizeText(question))
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
