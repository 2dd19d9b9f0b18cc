package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"trivia/internal/engine"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
}

func statusForKind(kind engine.Kind) int {
	switch kind {
	case engine.KindInvalidRequest, engine.KindMissingField:
		return http.StatusBadRequest
	case engine.KindForbiddenAccess:
		return http.StatusForbidden
	case engine.KindForbiddenAction, engine.KindActOutOfTurn, engine.KindForbiddenWager,
		engine.KindTileAlreadyChosen, engine.KindTeamAtMaxCapacity:
		return http.StatusConflict
	case engine.KindTileNotFound, engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindBusy:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// describeError turns err into the status and body sent to clients. Errors
// outside the domain taxonomy are logged and reported without detail.
func describeError(err error) (int, errorBody) {
	var domainErr *engine.Error
	if errors.As(err, &domainErr) {
		return statusForKind(domainErr.Kind), errorBody{
			Code:     string(domainErr.Kind),
			Message:  domainErr.Message,
			Expected: domainErr.Metadata["expected"],
		}
	}
	switch {
	case errors.Is(err, errRunnerStopped), errors.Is(err, errStoreClosed):
		return http.StatusServiceUnavailable, errorBody{Code: string(engine.KindBusy), Message: "server is shutting down"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errorBody{Code: string(engine.KindBusy), Message: "request cancelled"}
	}
	log.Printf("request failed error=%v", err)
	return http.StatusInternalServerError, errorBody{Code: string(engine.KindUnknown), Message: "internal error"}
}

func writeError(c *gin.Context, err error) {
	status, body := describeError(err)
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
