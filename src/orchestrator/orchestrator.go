// Package orchestrator turns one user message into one reply from the
// generation service. It owns the whole retry policy: a structurally valid
// but empty reply is retried up to a fixed attempt cap, a failed call is
// surfaced immediately. Failures come back as errors, never panics; the
// caller decides how to present them.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lucas-bats/timetraveler/src/histdata"
)

// maxAttempts is the total number of generation attempts per request,
// counting the first one.
const maxAttempts = 3

var (
	// ErrEmptyReply is returned when every attempt produced an empty reply.
	ErrEmptyReply = errors.New("generation service returned an empty reply")

	// ErrBlankMessage is returned for a blank user message. Callers are
	// expected to filter these before dispatch.
	ErrBlankMessage = errors.New("user message is blank")
)

// Generator is the remote generation collaborator. Implementations may
// return ("", nil) for a reply the service produced with no content.
type Generator interface {
	GenerateFigureReply(ctx context.Context, figureName, userMessage, language string) (string, error)
	GenerateEventReply(ctx context.Context, eventID, userMessage string, participants []string, eventContext, language string) (string, error)
}

// Orchestrator coordinates generation calls for conversation subjects.
type Orchestrator struct {
	generator Generator
	logger    *slog.Logger
}

// New creates an orchestrator over the given generator.
func New(generator Generator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		generator: generator,
		logger:    logger.With("component", "orchestrator"),
	}
}

// RequestReply produces the reply for one user message addressed to subject,
// in the given language. Empty replies are retried up to the attempt cap and
// then reported as ErrEmptyReply; a generator error ends the call at once.
func (o *Orchestrator) RequestReply(ctx context.Context, subject histdata.Subject, text, language string) (string, error) {
	if text == "" {
		return "", ErrBlankMessage
	}

	logger := o.logger.With("subject_type", subject.SubjectType(), "subject_id", subject.SubjectID())

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reply, err := o.dispatch(ctx, subject, text, language)
		if err != nil {
			logger.Error("generation call failed", "attempt", attempt, "error", err)
			return "", err
		}
		if reply != "" {
			logger.Debug("generation succeeded", "attempt", attempt)
			return reply, nil
		}
		logger.Warn("empty reply from generation service", "attempt", attempt)
	}

	logger.Error("generation exhausted retries", "attempts", maxAttempts)
	return "", ErrEmptyReply
}

// dispatch selects the remote call for the subject variant.
func (o *Orchestrator) dispatch(ctx context.Context, subject histdata.Subject, text, language string) (string, error) {
	switch s := subject.(type) {
	case *histdata.Character:
		return o.generator.GenerateFigureReply(ctx, s.Name, text, language)
	case *histdata.Event:
		return o.generator.GenerateEventReply(ctx, s.ID, text, s.ParticipantNames(), s.Context, language)
	default:
		return "", fmt.Errorf("unhandled subject variant %T", subject)
	}
}
