package recovery

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type EventKind int

const (
	// DigitEvent is a key press, Digit in [1,9].
	DigitEvent EventKind = iota
	BackspaceEvent
	// WordEvent carries a typed word or, in matrix mode, a digit.
	WordEvent
	// CancelEvent is sent when the host or user cancels.
	CancelEvent
	// ReinitializeEvent is sent when the host restarts the session.
	ReinitializeEvent
	// TimeoutEvent is an idle tick and changes nothing.
	TimeoutEvent
)

type Event struct {
	Kind  EventKind
	Digit int
	Word  []byte
}

// EventSource delivers user input.
type EventSource interface {
	Next(ctx context.Context) (Event, error)
}

// Handle applies ev to the session.
func (s *Session) Handle(ev Event) (Status, error) {
	if !s.active {
		return Aborted, ErrNotInRecovery
	}
	switch ev.Kind {
	case DigitEvent:
		return s.Digit(ev.Digit)
	case BackspaceEvent:
		return s.Digit(0)
	case WordEvent:
		return s.Word(ev.Word)
	case CancelEvent:
		s.Abort(ErrCancelled)
		return Aborted, ErrCancelled
	case ReinitializeEvent:
		s.Abort(ErrReinitialized)
		return Aborted, ErrReinitialized
	case TimeoutEvent:
		return Pending, nil
	}
	return Pending, fmt.Errorf("recovery: unknown event kind %d", ev.Kind)
}

// Run feeds events from src to the session until it finishes. The
// session is aborted if src fails or ctx is done.
func Run(ctx context.Context, s *Session, src EventSource) (Status, error) {
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			s.Abort(err)
			return Aborted, err
		}
		st, err := s.Handle(ev)
		if st != Pending {
			return st, err
		}
		if err != nil {
			s.log.Debug("ignored event", zap.Error(err))
		}
	}
}
