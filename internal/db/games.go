package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"trivia/internal/engine"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventPayload is the audit record written for every committed operation.
type EventPayload struct {
	Code           string `json:"code"`
	Status         string `json:"status,omitempty"`
	MessageID      int64  `json:"message_id"`
	RoundID        uint   `json:"round_id,omitempty"`
	ActionType     string `json:"action_type,omitempty"`
	TileID         uint   `json:"tile_id,omitempty"`
	TeamID         uint   `json:"team_id,omitempty"`
	UserID         uint   `json:"user_id,omitempty"`
	Amount         int    `json:"amount,omitempty"`
	IsCorrect      *bool  `json:"is_correct,omitempty"`
	NextActionType string `json:"next_action_type,omitempty"`
	Reveals        int    `json:"reveals,omitempty"`
}

// ErrCodeInUse is returned by CreateGame when another game holds the code.
var ErrCodeInUse = errors.New("game code in use")

// CreateGame inserts the whole game tree and copies the assigned ids back
// onto game.
func CreateGame(conn *gorm.DB, game *engine.Game) error {
	record := toGameRecord(game)
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrCodeInUse
			}
			return fmt.Errorf("create game: %w", err)
		}
		game.ID = record.ID
		for i := range record.Rounds {
			round := &record.Rounds[i]
			target := &game.Rounds[i]
			target.ID = round.ID
			target.Board.ID = round.Board.ID
			for j := range round.Board.Categories {
				category := &round.Board.Categories[j]
				target.Board.Categories[j].ID = category.ID
				for k := range category.Tiles {
					target.Board.Categories[j].Tiles[k].ID = category.Tiles[k].ID
					target.Board.Categories[j].Tiles[k].Trivia.ID = category.Tiles[k].TriviaID
				}
			}
		}
		game.StartAtFirstRound()
		if err := tx.Model(&Game{}).Where("id = ?", game.ID).Update("next_round_id", nullableID(game.NextRoundID)).Error; err != nil {
			return fmt.Errorf("set first round: %w", err)
		}
		return appendEvent(tx, game, engine.EventGameCreated, nil, eventPayload(game, nil))
	})
}

// LoadGame reads a game and its ledger by join code. A missing game is
// reported as engine.KindNotFound.
func LoadGame(conn *gorm.DB, code string) (*engine.Game, error) {
	var record Game
	err := conn.
		Preload("Rounds.Board.Categories.Tiles.Trivia").
		Preload("Teams", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Teams.Players", func(tx *gorm.DB) *gorm.DB { return tx.Order("joined_at, id") }).
		Where("code = ?", code).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.NewError(engine.KindNotFound, "game not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	game := fromGameRecord(record)

	actions, err := loadActions(conn, record.ID)
	if err != nil {
		return nil, err
	}
	game.Actions = actions

	var reveals []Reveal
	if err := conn.Where("game_id = ?", record.ID).Order("id").Find(&reveals).Error; err != nil {
		return nil, fmt.Errorf("load reveals: %w", err)
	}
	for _, reveal := range reveals {
		game.Reveals = append(game.Reveals, engine.Reveal{
			RoundID: reveal.RoundID,
			Level:   engine.Level(reveal.Level),
			LevelID: reveal.LevelID,
			Detail:  engine.Detail(reveal.Detail),
		})
	}
	game.SortBoard()
	return game, nil
}

func loadActions(conn *gorm.DB, gameID uint) ([]engine.Action, error) {
	var (
		choices   []Choice
		buzzes    []Buzz
		responses []Response
		wagers    []Wager
	)
	if err := conn.Where("game_id = ?", gameID).Find(&choices).Error; err != nil {
		return nil, fmt.Errorf("load choices: %w", err)
	}
	if err := conn.Where("game_id = ?", gameID).Find(&buzzes).Error; err != nil {
		return nil, fmt.Errorf("load buzzes: %w", err)
	}
	if err := conn.Where("game_id = ?", gameID).Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	if err := conn.Where("game_id = ?", gameID).Find(&wagers).Error; err != nil {
		return nil, fmt.Errorf("load wagers: %w", err)
	}

	actions := make([]engine.Action, 0, len(choices)+len(buzzes)+len(responses)+len(wagers))
	for _, row := range choices {
		actions = append(actions, engine.Choice{ActionBase: actionBase(row.TileID, row.TeamID, row.UserID, row.MessageID, row.CreatedAt)})
	}
	for _, row := range buzzes {
		actions = append(actions, engine.Buzz{ActionBase: actionBase(row.TileID, row.TeamID, row.UserID, row.MessageID, row.CreatedAt)})
	}
	for _, row := range responses {
		actions = append(actions, engine.Response{
			ActionBase: actionBase(row.TileID, row.TeamID, row.UserID, row.MessageID, row.CreatedAt),
			Question:   row.Question,
			IsCorrect:  row.IsCorrect,
		})
	}
	for _, row := range wagers {
		actions = append(actions, engine.Wager{
			ActionBase: actionBase(row.TileID, row.TeamID, row.UserID, row.MessageID, row.CreatedAt),
			Amount:     row.Amount,
		})
	}
	slices.SortStableFunc(actions, func(a, b engine.Action) int {
		return int(a.Base().MessageID - b.Base().MessageID)
	})
	return actions, nil
}

func actionBase(tileID, teamID, userID uint, messageID int64, createdAt time.Time) engine.ActionBase {
	return engine.ActionBase{
		TileID:    tileID,
		TeamID:    teamID,
		UserID:    userID,
		MessageID: messageID,
		CreatedAt: createdAt,
	}
}

// ApplyChanges persists one committed operation in a single transaction:
// either all of it is stored or none of it is. New team ids are copied back
// onto game.
func ApplyChanges(conn *gorm.DB, game *engine.Game, changes *engine.Changes) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		for _, index := range changes.NewTeams {
			team := &game.Teams[index]
			record := Team{GameID: game.ID, Name: team.Name, Score: team.Score}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create team: %w", err)
			}
			team.ID = record.ID
		}
		if len(changes.RemovedTeams) > 0 {
			if err := tx.Where("game_id = ? AND id IN ?", game.ID, changes.RemovedTeams).Delete(&Team{}).Error; err != nil {
				return fmt.Errorf("remove teams: %w", err)
			}
		}
		for _, member := range changes.Members {
			record := Player{
				GameID:   game.ID,
				UserID:   member.Player.UserID,
				TeamID:   member.TeamID,
				Name:     member.Player.Name,
				Active:   member.Player.Active,
				JoinedAt: time.Now().UTC(),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"team_id", "name", "active", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				return fmt.Errorf("save player: %w", err)
			}
		}
		for _, teamID := range changes.Scores {
			team := game.Team(teamID)
			if team == nil {
				continue
			}
			if err := tx.Model(&Team{}).Where("id = ?", team.ID).Update("score", team.Score).Error; err != nil {
				return fmt.Errorf("update score: %w", err)
			}
		}
		for _, action := range changes.Actions {
			if err := insertAction(tx, game.ID, action); err != nil {
				return err
			}
		}
		for _, reveal := range changes.Reveals {
			record := Reveal{
				GameID:  game.ID,
				RoundID: reveal.RoundID,
				Level:   string(reveal.Level),
				LevelID: reveal.LevelID,
				Detail:  string(reveal.Detail),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
				return fmt.Errorf("save reveal: %w", err)
			}
		}
		if err := tx.Model(&Game{}).Where("id = ?", game.ID).Updates(map[string]any{
			"status":           string(game.Status),
			"next_message_id":  game.NextMessageID,
			"next_round_id":    nullableID(game.NextRoundID),
			"next_action_type": string(game.NextActionType),
			"next_chooser_id":  nullableID(game.NextChooserID),
			"updated_at":       time.Now().UTC(),
		}).Error; err != nil {
			return fmt.Errorf("update game: %w", err)
		}

		var action engine.Action
		if len(changes.Actions) > 0 {
			action = changes.Actions[0]
		}
		payload := eventPayload(game, action)
		payload.Reveals = len(changes.Reveals)
		for _, eventType := range changes.Events {
			if err := appendEvent(tx, game, eventType, action, payload); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertAction(tx *gorm.DB, gameID uint, action engine.Action) error {
	base := action.Base()
	var record any
	switch a := action.(type) {
	case engine.Choice:
		record = &Choice{GameID: gameID, MessageID: base.MessageID, TileID: base.TileID, TeamID: base.TeamID, UserID: base.UserID, CreatedAt: base.CreatedAt}
	case engine.Buzz:
		record = &Buzz{GameID: gameID, MessageID: base.MessageID, TileID: base.TileID, TeamID: base.TeamID, UserID: base.UserID, CreatedAt: base.CreatedAt}
	case engine.Response:
		record = &Response{GameID: gameID, MessageID: base.MessageID, TileID: base.TileID, TeamID: base.TeamID, UserID: base.UserID, Question: a.Question, IsCorrect: a.IsCorrect, CreatedAt: base.CreatedAt}
	case engine.Wager:
		record = &Wager{GameID: gameID, MessageID: base.MessageID, TileID: base.TileID, TeamID: base.TeamID, UserID: base.UserID, Amount: a.Amount, CreatedAt: base.CreatedAt}
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	if err := tx.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			if action.Type() == engine.ActionChoice {
				return engine.Wrap(engine.KindTileAlreadyChosen, "tile already chosen", err)
			}
			return engine.Wrap(engine.KindActOutOfTurn, fmt.Sprintf("%s already recorded", action.Type()), err)
		}
		return fmt.Errorf("save %s: %w", action.Type(), err)
	}
	return nil
}

func appendEvent(tx *gorm.DB, game *engine.Game, eventType string, action engine.Action, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	event := Event{
		GameID:    game.ID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	if action != nil {
		base := action.Base()
		event.TeamID = &base.TeamID
		event.UserID = &base.UserID
		event.MessageID = &base.MessageID
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func eventPayload(game *engine.Game, action engine.Action) EventPayload {
	payload := EventPayload{
		Code:           game.Code,
		Status:         string(game.Status),
		MessageID:      game.NextMessageID,
		RoundID:        game.NextRoundID,
		NextActionType: string(game.NextActionType),
	}
	if action == nil {
		return payload
	}
	base := action.Base()
	payload.MessageID = base.MessageID
	payload.ActionType = string(action.Type())
	payload.TileID = base.TileID
	payload.TeamID = base.TeamID
	payload.UserID = base.UserID
	switch a := action.(type) {
	case engine.Response:
		correct := a.IsCorrect
		payload.IsCorrect = &correct
	case engine.Wager:
		payload.Amount = a.Amount
	}
	return payload
}

// ListEvents returns a page of the audit log of a game, oldest first, with
// the total number of events.
func ListEvents(conn *gorm.DB, gameID uint, offset, limit int) ([]Event, int64, error) {
	var total int64
	if err := conn.Model(&Event{}).Where("game_id = ?", gameID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	var events []Event
	query := conn.Where("game_id = ?", gameID).Order("id").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func nullableID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
