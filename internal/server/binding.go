package server

import (
	"errors"

	"trivia/internal/engine"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, resolveBindError(err, messages, fallback))
		return false
	}
	return true
}

// resolveBindError maps validator failures onto domain errors: a missing
// required field is MISSING_FIELD, anything else INVALID_REQUEST.
func resolveBindError(err error, messages bindMessages, fallback string) *engine.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			kind := engine.KindInvalidRequest
			if verr.Tag() == "required" {
				kind = engine.KindMissingField
			}
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return engine.NewError(kind, msg)
				}
			}
			if kind == engine.KindMissingField {
				return engine.NewError(kind, verr.Field()+" is required")
			}
		}
	}
	if fallback == "" {
		fallback = "invalid request"
	}
	return engine.Wrap(engine.KindInvalidRequest, fallback, err)
}
