package arhttp

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Stage identifies which point of a remote lookup an Event describes.
type Stage int

const (
	// StageRequest is emitted right before the GET is sent.
	StageRequest Stage = iota
	// StageTransportError is emitted when no response was received.
	StageTransportError
	// StageStatusError is emitted when the response status was not 200.
	StageStatusError
	// StageResolved is emitted when the lookup service returned a location.
	StageResolved
)

// String returns the lower-case name of the stage.
func (s Stage) String() string {
	switch s {
	case StageRequest:
		return "request"
	case StageTransportError:
		return "transport_error"
	case StageStatusError:
		return "status_error"
	case StageResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Event describes one step of a remote lookup. Only the fields relevant to
// Stage are set.
type Event struct {
	Stage      Stage
	Method     string
	URL        string
	Err        error
	StatusCode int
	Status     string
	Location   string
}

// String formats the event as a single trace line, e.g.
//
//	GET http://localhost:8000/scene.usd Requesting...
//	GET http://localhost:8000/scene.usd 404 Not Found
//	GET http://localhost:8000/scene.usd 200 OK /tmp/cache/scene.usd
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Method)
	sb.WriteString(" ")
	sb.WriteString(e.URL)
	sb.WriteString(" ")

	switch e.Stage {
	case StageRequest:
		sb.WriteString("Requesting...")
	case StageTransportError:
		if e.Err != nil {
			sb.WriteString(e.Err.Error())
		}
	case StageStatusError, StageResolved:
		sb.WriteString(strconv.Itoa(e.StatusCode))
		if e.Status != "" {
			sb.WriteString(" ")
			sb.WriteString(e.Status)
		}
		if e.Stage == StageResolved {
			sb.WriteString(" ")
			sb.WriteString(e.Location)
		}
	}

	return sb.String()
}

// Tracer receives lookup events. It is only called when Config.Debug is set
// and never influences the resolution result.
// Implementations MUST be safe for concurrent use by multiple goroutines.
type Tracer interface {
	Trace(ev Event)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(ev Event)

// Trace calls f(ev).
func (f TracerFunc) Trace(ev Event) {
	f(ev)
}

// NopTracer discards every event.
type NopTracer struct{}

// Trace implements Tracer.
func (NopTracer) Trace(Event) {}

// ZapTracer writes each event as a debug-level zap entry.
type ZapTracer struct {
	logger *zap.Logger
}

// NewZapTracer creates a ZapTracer. A nil logger discards everything.
func NewZapTracer(logger *zap.Logger) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapTracer{logger: logger.Named("arhttp")}
}

// Trace implements Tracer.
func (t *ZapTracer) Trace(ev Event) {
	fields := []zap.Field{
		zap.Stringer("stage", ev.Stage),
		zap.String("method", ev.Method),
		zap.String("url", ev.URL),
	}

	switch ev.Stage {
	case StageRequest:
	case StageTransportError:
		fields = append(fields, zap.Error(ev.Err))
	case StageStatusError:
		fields = append(fields, zap.Int("status", ev.StatusCode))
	case StageResolved:
		fields = append(fields, zap.Int("status", ev.StatusCode), zap.String("location", ev.Location))
	}

	t.logger.Debug(ev.String(), fields...)
}
