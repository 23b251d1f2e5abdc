package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/notesentry/notesentry/internal/audit"
	"github.com/notesentry/notesentry/internal/cache"
	"github.com/notesentry/notesentry/internal/scrub"
	"github.com/notesentry/notesentry/internal/websocket"
)

// RedactRequest is the payload of POST /v1/redact.
type RedactRequest struct {
	Text string   `json:"text"`
	Skip []string `json:"skip,omitempty"`
}

// RedactResponse carries the redacted text and per-category counts.
type RedactResponse struct {
	Text     string      `json:"text"`
	Stats    scrub.Stats `json:"stats"`
	Total    int         `json:"total"`
	CacheHit bool        `json:"cache_hit"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleRedact runs one redaction pass over the submitted text
func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes)

	var req RedactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	skip, err := scrub.NewSkipSet(req.Skip...)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var (
		redacted string
		stats    scrub.Stats
		cacheHit bool
		cacheKey string
	)

	if s.cache != nil {
		cacheKey = s.cache.Key(req.Text, skip)
		if entry, ok := s.cache.Get(r.Context(), cacheKey); ok {
			redacted, stats, cacheHit = entry.Text, entry.Stats, true
		}
	}

	if !cacheHit {
		redacted, stats = s.engine.Redact(req.Text, skip)
		if s.cache != nil {
			entry := &cache.Entry{Text: redacted, Stats: stats, CachedAt: time.Now()}
			if err := s.cache.Set(r.Context(), cacheKey, entry); err != nil {
				log.Error("Failed to cache redaction result", zap.Error(err))
			}
		}
	}

	if s.audit != nil {
		if err := s.audit.Insert(r.Context(), audit.NewRecord(requestID, stats)); err != nil {
			// Audit failure is logged but must not fail the redaction itself
			log.Error("Failed to write audit record", zap.Error(err))
		}
	}

	durationMS := float64(time.Since(start).Nanoseconds()) / 1e6
	log.LogRedaction(requestID, stats.Total(), durationMS, cacheHit)

	s.wsHub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventTypeRedaction,
		Timestamp: time.Now(),
		RequestID: requestID,
		Data: websocket.RedactionEvent{
			RequestID:    requestID,
			ClientIP:     getClientIP(r),
			Stats:        stats,
			Total:        stats.Total(),
			Skipped:      skip.Names(),
			CacheHit:     cacheHit,
			ProcessingMS: durationMS,
		},
	})

	writeJSON(w, http.StatusOK, RedactResponse{
		Text:     redacted,
		Stats:    stats,
		Total:    stats.Total(),
		CacheHit: cacheHit,
	})
}

// handleAuditRecent returns the newest audit records
func (s *Server) handleAuditRecent(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "audit trail is disabled"})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := s.audit.RecentRecords(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to load audit records", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load audit records"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAuditTotals returns aggregate counts across the audit trail
func (s *Server) handleAuditTotals(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "audit trail is disabled"})
		return
	}

	totals, err := s.audit.Totals(r.Context())
	if err != nil {
		s.logger.Error("Failed to aggregate audit records", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to aggregate audit records"})
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":          "notesentry",
		"version":       "0.1.0",
		"cache_enabled": s.cache != nil,
		"audit_enabled": s.audit != nil,
		"categories":    scrub.Categories,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing useful left to do
		_ = err
	}
}
