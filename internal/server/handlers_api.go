package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"trivia/internal/db"
	"trivia/internal/engine"

	"github.com/gin-gonic/gin"
)

const maxCodeAttempts = 10

type createUserRequest struct {
	DisplayName string `json:"display_name" binding:"required,name"`
}

type createGameRequest struct {
	Name              string `json:"name" binding:"omitempty,name"`
	MaxTeams          int    `json:"max_teams" binding:"omitempty,min=1,max=12"`
	MaxPlayersPerTeam int    `json:"max_players_per_team" binding:"omitempty,min=1,max=12"`
}

type joinRequest struct {
	Team string `json:"team" binding:"omitempty,name"`
}

type gameURI struct {
	Code string `uri:"code" binding:"required,len=4,alpha"`
}

type eventView struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	TeamID    *uint           `json:"team_id,omitempty"`
	UserID    *uint           `json:"user_id,omitempty"`
	MessageID *int64          `json:"message_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

var userMessages = bindMessages{
	"DisplayName": {
		"required": "display_name is required",
		"name":     "display_name must be 1-32 plain characters",
	},
}

var gameMessages = bindMessages{
	"Name":              {"name": "name must be 1-32 plain characters"},
	"MaxTeams":          {"min": "max_teams must be at least 1", "max": "max_teams must be 12 or fewer"},
	"MaxPlayersPerTeam": {"min": "max_players_per_team must be at least 1", "max": "max_players_per_team must be 12 or fewer"},
}

var joinMessages = bindMessages{
	"Team": {"name": "team must be 1-32 plain characters"},
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req, userMessages, "invalid user") {
		return
	}
	name, _ := validateName(req.DisplayName)
	user, err := s.createUser(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	log.Printf("user created user_id=%d", user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"user_id":      user.ID,
		"display_name": user.Name,
		"token":        token,
		"expires_at":   s.now().Add(s.cfg.TokenTTL()),
	})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, gameMessages, "invalid game settings") {
			return
		}
	}
	user := currentUser(c)
	opts := engine.Options{
		Name:              normalizeText(req.Name),
		OwnerID:           user.ID,
		MaxTeams:          req.MaxTeams,
		MaxPlayersPerTeam: req.MaxPlayersPerTeam,
		Categories:        s.cfg.BoardCategories,
		TilesPerCategory:  s.cfg.BoardTilesPerCategory,
	}
	if opts.MaxTeams == 0 {
		opts.MaxTeams = s.cfg.DefaultMaxTeams
	}
	if opts.MaxPlayersPerTeam == 0 {
		opts.MaxPlayersPerTeam = s.cfg.DefaultMaxPlayersPerTeam
	}

	ctx := c.Request.Context()
	clues, err := s.libraryClues(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		game := engine.NewGame(newGameCode(), opts, clues, s.boardRand())
		if err := s.persistNewGame(ctx, game); err != nil {
			if errors.Is(err, errCodeInUse) {
				continue
			}
			writeError(c, err)
			return
		}
		if _, err := s.store.Add(game); err != nil {
			if errors.Is(err, errCodeInUse) {
				continue
			}
			writeError(c, err)
			return
		}
		log.Printf("game created game_id=%d code=%s owner_id=%d", game.ID, game.Code, game.OwnerID)
		c.JSON(http.StatusCreated, snapshot(game))
		return
	}
	writeError(c, engine.NewError(engine.KindBusy, "no free game code, try again"))
}

func (s *Server) runnerFor(c *gin.Context) (*gameRunner, bool) {
	var uri gameURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, engine.NewError(engine.KindNotFound, "game not found"))
		return nil, false
	}
	runner, err := s.store.Runner(c.Request.Context(), strings.ToUpper(uri.Code))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return runner, true
}

func (s *Server) handleGetGame(c *gin.Context) {
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snapshot(runner.Current()))
}

func (s *Server) handleOpenGame(c *gin.Context) {
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	user := currentUser(c)
	game, _, err := runner.Submit(c.Request.Context(), "open", func(game *engine.Game) (*engine.Changes, error) {
		return engine.Open(game, user.ID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	log.Printf("game opened code=%s teams=%d", game.Code, len(game.Teams))
	c.JSON(http.StatusOK, snapshot(game))
}

func (s *Server) handleJoinGame(c *gin.Context) {
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	var req joinRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, joinMessages, "invalid team") {
			return
		}
	}
	user := currentUser(c)
	teamName := normalizeText(req.Team)
	var joined string
	game, _, err := runner.Submit(c.Request.Context(), "join", func(game *engine.Game) (*engine.Changes, error) {
		team, changes, err := engine.Join(game, user, teamName)
		if err != nil {
			return nil, err
		}
		joined = team.Name
		if len(changes.Events) == 0 {
			return nil, nil
		}
		return changes, nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	log.Printf("player joined code=%s user_id=%d team=%q", game.Code, user.ID, joined)
	c.JSON(http.StatusOK, gin.H{"team": joined, "game": snapshot(game)})
}

func (s *Server) handleBeginGame(c *gin.Context) {
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	user := currentUser(c)
	game, _, err := runner.Submit(c.Request.Context(), "begin", func(game *engine.Game) (*engine.Changes, error) {
		return engine.Begin(game, user.ID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	log.Printf("game begun code=%s teams=%d", game.Code, len(game.Teams))
	c.JSON(http.StatusOK, snapshot(game))
}

func (s *Server) handlePerformAction(c *gin.Context) {
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	var req actionRequest
	if !bindJSON(c, &req, actionMessages, "invalid action") {
		return
	}
	game, err := s.perform(c.Request.Context(), runner, currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot(game))
}

// perform submits an action request for the user on the game's runner.
func (s *Server) perform(ctx context.Context, runner *gameRunner, user engine.User, body actionRequest) (*engine.Game, error) {
	req, err := body.toRequest()
	if err != nil {
		return nil, err
	}
	game, changes, err := runner.Submit(ctx, "perform", func(game *engine.Game) (*engine.Changes, error) {
		return engine.Submit(game, user.ID, req, s.now())
	})
	if err != nil {
		log.Printf("action rejected code=%s user_id=%d type=%s kind=%s", runner.code, user.ID, req.Action.Type(), engine.KindOf(err))
		return nil, err
	}
	recorded := changes.Actions[0].Base()
	log.Printf("action admitted code=%s message_id=%d type=%s team_id=%d", game.Code, recorded.MessageID, req.Action.Type(), recorded.TeamID)
	if game.Status == engine.StatusFinished {
		log.Printf("game finished code=%s", game.Code)
	}
	return game, nil
}

func (s *Server) handleListEvents(c *gin.Context) {
	if s.db == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": errorBody{
			Code:    "UNAVAILABLE",
			Message: "events are only recorded with a database",
		}})
		return
	}
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	page, perPage := parsePagination(c, 100, maxEventsPerPage)
	events, total, err := db.ListEvents(s.db.WithContext(c.Request.Context()), runner.Current().ID, (page-1)*perPage, perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]eventView, 0, len(events))
	for _, event := range events {
		views = append(views, eventView{
			ID:        event.ID,
			Type:      event.Type,
			TeamID:    event.TeamID,
			UserID:    event.UserID,
			MessageID: event.MessageID,
			Payload:   json.RawMessage(event.Payload),
			CreatedAt: event.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"events":     views,
		"pagination": buildPaginationData(page, perPage, total),
	})
}
