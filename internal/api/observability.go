package api

import (
	"fmt"
	"io"
	"time"
)

// APICallEvent records metadata about a single API round trip.
type APICallEvent struct {
	Method    string
	Path      string
	Status    int // 0 when the request never reached the server
	LatencyMs int64
	RequestID string
	Err       error
}

// Observer receives events about API calls for logging and diagnostics.
type Observer interface {
	OnCallComplete(event APICallEvent)
}

// LogObserver writes API call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event APICallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if event.Err != nil {
		status = "err:" + event.Err.Error()
	}
	fmt.Fprintf(o.w, "[%s] api_call method=%s path=%s http=%d latency_ms=%d request_id=%s status=%s\n",
		ts, event.Method, event.Path, event.Status, event.LatencyMs, event.RequestID, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(APICallEvent) {}
