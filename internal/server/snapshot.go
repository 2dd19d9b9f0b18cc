package server

import "trivia/internal/engine"

type gameSnapshot struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	Display         displaySnapshot `json:"display"`
	Round           *roundSnapshot  `json:"round"`
	Teams           []teamSnapshot  `json:"teams"`
	MessageID       int64           `json:"message_id"`
	NextActionType  *string         `json:"next_action_type"`
	TeamThatChooses *string         `json:"team_that_chooses"`
}

type displaySnapshot struct {
	Level string `json:"level"`
	ID    uint   `json:"id"`
}

type roundSnapshot struct {
	ID         uint               `json:"id"`
	Class      string             `json:"class"`
	Ordinal    int                `json:"ordinal"`
	Categories []categorySnapshot `json:"categories"`
}

type categorySnapshot struct {
	ID    uint           `json:"id"`
	Name  *string        `json:"name"`
	Tiles []tileSnapshot `json:"tiles"`
}

type tileSnapshot struct {
	ID            uint    `json:"id"`
	Points        *int    `json:"points"`
	Chosen        bool    `json:"chosen"`
	IsDailyDouble *bool   `json:"is_daily_double,omitempty"`
	Answer        *string `json:"answer,omitempty"`
	Question      *string `json:"question,omitempty"`
}

type teamSnapshot struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Score            int      `json:"score"`
	Players          []string `json:"players"`
	HasPressedBuzzer bool     `json:"has_pressed_buzzer"`
}

// snapshot is the public view of a game: hidden trivia stays hidden until
// revealed.
func snapshot(game *engine.Game) gameSnapshot {
	view := gameSnapshot{
		Code:      game.Code,
		Name:      game.Name,
		Status:    string(game.Status),
		Display:   displaySnapshot{Level: "game", ID: game.ID},
		Teams:     make([]teamSnapshot, 0, len(game.Teams)),
		MessageID: game.NextMessageID,
	}
	if game.NextActionType != "" {
		next := string(game.NextActionType)
		view.NextActionType = &next
	}
	if game.Status == engine.StatusStarted {
		if chooser := game.Team(game.NextChooserID); chooser != nil {
			name := chooser.Name
			view.TeamThatChooses = &name
		}
	}

	var inPlay *engine.Tile
	if game.Status == engine.StatusStarted && game.NextActionType != engine.ActionChoice {
		inPlay = game.TileInPlay()
	}
	if inPlay != nil {
		view.Display = displaySnapshot{Level: string(engine.LevelTile), ID: inPlay.ID}
	}

	if round := game.Round(game.NextRoundID); round != nil && game.Status != engine.StatusEditable {
		view.Round = roundView(game, round)
	}

	for _, team := range game.Teams {
		players := make([]string, 0, len(team.Players))
		for _, player := range team.Players {
			players = append(players, player.Name)
		}
		view.Teams = append(view.Teams, teamSnapshot{
			ID:               team.ID,
			Name:             team.Name,
			Score:            team.Score,
			Players:          players,
			HasPressedBuzzer: inPlay != nil && game.HasActed(team.ID, engine.ActionBuzz, inPlay.ID),
		})
	}
	return view
}

func roundView(game *engine.Game, round *engine.Round) *roundSnapshot {
	view := &roundSnapshot{
		ID:         round.ID,
		Class:      string(round.Class),
		Ordinal:    round.Ordinal,
		Categories: make([]categorySnapshot, 0, len(round.Board.Categories)),
	}
	for i := range round.Board.Categories {
		category := &round.Board.Categories[i]
		categoryView := categorySnapshot{ID: category.ID, Tiles: make([]tileSnapshot, 0, len(category.Tiles))}
		if game.IsRevealed(engine.LevelCategory, category.ID, engine.DetailName) {
			name := category.Name
			categoryView.Name = &name
		}
		for j := range category.Tiles {
			tile := &category.Tiles[j]
			tileView := tileSnapshot{
				ID:     tile.ID,
				Chosen: game.Count(engine.ActionChoice, tile.ID) > 0,
			}
			if points, ok := engine.Points(round, category, tile); ok {
				tileView.Points = &points
			}
			if game.IsRevealed(engine.LevelTile, tile.ID, engine.DetailIsDailyDouble) {
				isDailyDouble := tile.IsDailyDouble
				tileView.IsDailyDouble = &isDailyDouble
			}
			if game.IsRevealed(engine.LevelTile, tile.ID, engine.DetailAnswer) {
				answer := tile.Trivia.Answer
				tileView.Answer = &answer
			}
			if game.IsRevealed(engine.LevelTile, tile.ID, engine.DetailQuestion) {
				question := tile.Trivia.Question
				tileView.Question = &question
			}
			categoryView.Tiles = append(categoryView.Tiles, tileView)
		}
		view.Categories = append(view.Categories, categoryView)
	}
	return view
}
