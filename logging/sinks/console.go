// Package sinks holds logging.Sink implementations for the router.
package sinks

import (
	"context"
	"fmt"
	"io"
	"log"

	"arenic/logging"
)

// Console writes events as a single formatted line per event.
type Console struct {
	logger *log.Logger
}

// NewConsole builds a Console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{logger: log.New(w, "", log.LstdFlags)}
}

// Write implements logging.Sink.
func (s *Console) Write(event logging.Event) error {
	if s.logger == nil {
		return nil
	}
	s.logger.Printf("[%s] arena=%d actor=%s severity=%s category=%s payload=%v",
		event.Type, event.Arena, formatEntity(event.Actor), formatSeverity(event.Severity), event.Category, event.Payload)
	return nil
}

// Close implements logging.Sink.
func (s *Console) Close(context.Context) error { return nil }

func formatSeverity(sev logging.Severity) string {
	switch sev {
	case logging.SeverityDebug:
		return "debug"
	case logging.SeverityInfo:
		return "info"
	case logging.SeverityWarn:
		return "warn"
	case logging.SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}
