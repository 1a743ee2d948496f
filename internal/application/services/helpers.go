package services

import (
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

// Actors recorded with every diagnostic.
const (
	ActorGuest = "Guest"
	ActorAdmin = "admin"
)

const maxLoggedBody = 2048

// bodyExcerpt bounds the raw reply kept in diagnostics.
func bodyExcerpt(outcome application.Outcome) string {
	if len(outcome.Body) > maxLoggedBody {
		return string(outcome.Body[:maxLoggedBody]) + "..."
	}
	return string(outcome.Body)
}

// backendCode returns the error code of a non-200 reply, or 0 if the body
// carries none.
func backendCode(outcome application.Outcome) int {
	if resp, ok := protocol.DecodeError(outcome.Body); ok {
		return resp.Code
	}
	return 0
}

func actorOr(actor, fallback string) string {
	if actor == "" {
		return fallback
	}
	return actor
}
