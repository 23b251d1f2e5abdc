package websocket

import (
	"time"

	"github.com/notesentry/notesentry/internal/scrub"
)

// EventType represents the type of WebSocket event
type EventType string

const (
	// EventTypeRedaction represents a completed redaction pass
	EventTypeRedaction EventType = "redaction"
	// EventTypeRequestLog represents a request logging event
	EventTypeRequestLog EventType = "request_log"
	// EventTypeConnection represents connection events
	EventTypeConnection EventType = "connection"
)

// Event represents a WebSocket event sent to clients
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// RedactionEvent summarizes one redaction pass. It carries counts only;
// note text never goes out over the feed.
type RedactionEvent struct {
	RequestID    string      `json:"request_id"`
	ClientIP     string      `json:"client_ip"`
	Stats        scrub.Stats `json:"stats"`
	Total        int         `json:"total"`
	Skipped      []string    `json:"skipped,omitempty"`
	CacheHit     bool        `json:"cache_hit"`
	ProcessingMS float64     `json:"processing_ms"`
}

// RequestLogEvent represents a request logging event
type RequestLogEvent struct {
	RequestID    string        `json:"request_id"`
	Method       string        `json:"method"`
	Path         string        `json:"path"`
	StatusCode   int           `json:"status_code"`
	ClientIP     string        `json:"client_ip"`
	UserAgent    string        `json:"user_agent,omitempty"`
	Duration     time.Duration `json:"duration"`
	RequestSize  int64         `json:"request_size"`
	ResponseSize int64         `json:"response_size"`
}

// ConnectionEvent represents WebSocket connection events
type ConnectionEvent struct {
	Action   string `json:"action"` // "connected", "disconnected"
	ClientID string `json:"client_id"`
	ClientIP string `json:"client_ip"`
	Message  string `json:"message,omitempty"`
}

// ClientMessage represents messages sent from clients to server
type ClientMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SubscriptionRequest narrows which event types a client receives.
type SubscriptionRequest struct {
	Events []EventType `json:"events"`
}
