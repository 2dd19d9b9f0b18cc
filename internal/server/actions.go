package server

import (
	"strings"

	"trivia/internal/engine"
)

type actionPayload struct {
	Type     string `json:"type" binding:"required,oneof=buzz choice response wager"`
	TileID   uint   `json:"tile_id" binding:"required"`
	Question string `json:"question" binding:"max=512"`
	Amount   *int   `json:"amount"`
}

type actionRequest struct {
	MessageID *int64         `json:"message_id" binding:"required"`
	Action    *actionPayload `json:"action" binding:"required"`
}

var actionMessages = bindMessages{
	"MessageID": {"required": "message_id is required"},
	"Action":    {"required": "action is required"},
	"Type": {
		"required": "action type is required",
		"oneof":    "action type must be buzz, choice, response or wager",
	},
	"TileID":   {"required": "tile_id is required"},
	"Question": {"max": "question must be 512 characters or fewer"},
}

// toRequest builds the engine request, checking the fields only some
// action types carry.
func (r actionRequest) toRequest() (engine.Request, error) {
	base := engine.ActionBase{TileID: r.Action.TileID}
	req := engine.Request{MessageID: *r.MessageID}
	switch engine.ActionType(r.Action.Type) {
	case engine.ActionChoice:
		req.Action = engine.Choice{ActionBase: base}
	case engine.ActionBuzz:
		req.Action = engine.Buzz{ActionBase: base}
	case engine.ActionResponse:
		if strings.TrimSpace(r.Action.Question) == "" {
			return engine.Request{}, engine.NewError(engine.KindMissingField, "question is required")
		}
		req.Action = engine.Response{ActionBase: base, Question: r.Action.Question}
	case engine.ActionWager:
		if r.Action.Amount == nil {
			return engine.Request{}, engine.NewError(engine.KindMissingField, "amount is required")
		}
		req.Action = engine.Wager{ActionBase: base, Amount: *r.Action.Amount}
	default:
		return engine.Request{}, engine.NewError(engine.KindInvalidRequest, "unknown action type")
	}
	return req, nil
}
