// Package httpapi exposes the diagnosis engine, playbook generator, vertical
// catalog, and journey analytics over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/growthphysics/consulting-os/internal/analytics"
	"github.com/growthphysics/consulting-os/internal/diagnosis"
	"github.com/growthphysics/consulting-os/internal/diagstore"
	"github.com/growthphysics/consulting-os/internal/playbook"
	"github.com/growthphysics/consulting-os/internal/verticals"
)

// DiagnosisStore is the persistence surface the API needs. A nil store
// disables history: diagnoses still run, they just aren't archived.
type DiagnosisStore interface {
	Save(userID string, in diagnosis.Input, d *diagnosis.Diagnosis) (*diagstore.Record, error)
	Get(id string) (*diagstore.Record, error)
	ListByUser(userID string, limit int) ([]*diagstore.Record, error)
}

type Server struct {
	store     DiagnosisStore
	analytics analytics.Service
}

func NewServer(store DiagnosisStore, tracker analytics.Service) http.Handler {
	if tracker == nil {
		tracker = analytics.NopService{}
	}
	s := &Server{store: store, analytics: tracker}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/diagnoses", s.handleDiagnoses)
	mux.HandleFunc("/v1/diagnoses/", s.handleDiagnosisByID)
	mux.HandleFunc("/v1/playbooks", s.handlePlaybooks)
	mux.HandleFunc("/v1/playbooks/", s.handlePlaybookMarkdown)
	mux.HandleFunc("/v1/analytics", s.handleAnalytics)
	mux.HandleFunc("/v1/analytics/session", s.handleAnalyticsSession)
	mux.HandleFunc("/v1/analytics/journey", s.handleAnalyticsJourney)
	mux.HandleFunc("/v1/verticals", s.handleVerticals)
	mux.HandleFunc("/v1/examples", s.handleExamples)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, err error) {
	var ae *Error
	if errors.As(err, &ae) {
		writeJSON(w, ae.Status, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":    ae.Code,
				"message": ae.Message,
			},
		})
		return
	}
	var ie *diagnosis.InputError
	if errors.As(err, &ie) {
		writeJSON(w, 400, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":    CodeValidation,
				"message": ie.Error(),
				"field":   ie.Field,
			},
		})
		return
	}
	writeJSON(w, 500, map[string]any{
		"ok": false,
		"error": map[string]any{
			"code":    CodeInternal,
			"message": err.Error(),
		},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func decodeJSONBytes(blob []byte, dst any) error {
	return json.Unmarshal(blob, dst)
}

func parseInt(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return v
}

func parseFloat(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// --- diagnoses ---

func (s *Server) handleDiagnoses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createDiagnosis(w, r)
	case http.MethodGet:
		s.listDiagnoses(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createDiagnosis(w http.ResponseWriter, r *http.Request) {
	blob, err := readBody(r)
	if err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	var in diagnosis.Input
	if err := decodeJSONBytes(blob, &in); err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	d, err := diagnosis.Diagnose(in)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	payload := map[string]any{"ok": true, "diagnosis": d}

	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID != "" && s.store != nil {
		rec, err := s.store.Save(userID, in, d)
		if err != nil {
			writeAPIError(w, newError(CodeInternal, "store diagnosis: "+err.Error()))
			return
		}
		payload["id"] = rec.ID
		payload["createdAt"] = rec.CreatedAt.Format(time.RFC3339)
	}

	writeJSON(w, 200, payload)
}

func (s *Server) listDiagnoses(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeAPIError(w, newError(CodeUnauthorized, "X-User-ID required"))
		return
	}
	if s.store == nil {
		writeAPIError(w, newError(CodeUnavailable, "diagnosis history is disabled"))
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	recs, err := s.store.ListByUser(userID, limit)
	if err != nil {
		writeAPIError(w, newError(CodeInternal, "list diagnoses: "+err.Error()))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "diagnoses": recordsPayload(recs)})
}

func (s *Server) handleDiagnosisByID(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	if s.store == nil {
		writeAPIError(w, newError(CodeUnavailable, "diagnosis history is disabled"))
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/diagnoses/")
	if id == "" || strings.Contains(id, "/") {
		writeAPIError(w, newError(CodeNotFound, "diagnosis not found"))
		return
	}
	rec, err := s.store.Get(id)
	if err != nil {
		writeAPIError(w, newError(CodeInternal, "get diagnosis: "+err.Error()))
		return
	}
	if rec == nil {
		writeAPIError(w, newError(CodeNotFound, "diagnosis not found"))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "diagnosis": recordPayload(rec)})
}

func recordsPayload(recs []*diagstore.Record) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordPayload(rec))
	}
	return out
}

func recordPayload(rec *diagstore.Record) map[string]any {
	return map[string]any{
		"id":                     rec.ID,
		"primaryConstraint":      rec.PrimaryConstraint,
		"confidence":             rec.Confidence,
		"explanation":            rec.Explanation,
		"revenue":                rec.Revenue,
		"margin":                 rec.Margin,
		"cac":                    rec.CAC,
		"ltv":                    rec.LTV,
		"painPoint":              rec.PainPoint,
		"vertical":               rec.Vertical,
		"metaAnalysis":           rec.MetaAnalysis,
		"reasoning":              rec.Reasoning,
		"alternativeConstraints": rec.AlternativeConstraints,
		"nextSteps":              rec.NextSteps,
		"createdAt":              rec.CreatedAt.Format(time.RFC3339),
	}
}

// --- playbooks ---

func (s *Server) handlePlaybooks(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	var req struct {
		Constraint diagnosis.ConstraintCategory `json:"constraint"`
		Input      diagnosis.Input              `json:"input"`
	}
	if err := decodeJSONBytes(blob, &req); err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	p, err := playbook.Generate(req.Constraint, req.Input)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "playbook": p})
}

// handlePlaybookMarkdown serves GET /v1/playbooks/{constraint}/markdown with
// the business metrics passed as query parameters.
func (s *Server) handlePlaybookMarkdown(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/playbooks/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "markdown" {
		writeAPIError(w, newError(CodeNotFound, "unknown playbook path"))
		return
	}
	constraint := diagnosis.ConstraintCategory(parts[0])

	q := r.URL.Query()
	in := diagnosis.Input{
		Revenue:  parseFloat(q.Get("revenue")),
		Margin:   parseFloat(q.Get("margin")),
		CAC:      parseFloat(q.Get("cac")),
		LTV:      parseFloat(q.Get("ltv")),
		Vertical: strings.TrimSpace(q.Get("vertical")),
	}
	p, err := playbook.Generate(constraint, in)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, playbook.FormatMarkdown(p))
}

// --- analytics ---

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	var ev analytics.Event
	if err := decodeJSONBytes(blob, &ev); err != nil {
		writeAPIError(w, newValidationJSONError(err))
		return
	}
	if err := s.analytics.Track(ev); err != nil {
		writeAPIError(w, newError(CodeValidation, err.Error()))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "sessionId": ev.SessionID})
}

func (s *Server) handleAnalyticsSession(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
	if sessionID == "" {
		writeAPIError(w, newError(CodeValidation, "sessionId parameter required"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		events := s.analytics.SessionEvents(sessionID)
		writeJSON(w, 200, map[string]any{"ok": true, "sessionId": sessionID, "events": events, "count": len(events)})
	case http.MethodDelete:
		s.analytics.ClearSession(sessionID)
		writeJSON(w, 200, map[string]any{"ok": true, "sessionId": sessionID})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAnalyticsJourney(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
	if sessionID == "" {
		writeAPIError(w, newError(CodeValidation, "sessionId parameter required"))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "journey": s.analytics.JourneySummary(sessionID)})
}

// --- catalog ---

func (s *Server) handleVerticals(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "verticals": verticals.Featured})
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	vertical := strings.TrimSpace(r.URL.Query().Get("vertical"))
	if vertical == "" {
		writeJSON(w, 200, map[string]any{"ok": true, "examples": verticals.Examples})
		return
	}
	ex, ok := verticals.ExampleFor(vertical)
	if !ok {
		writeAPIError(w, newError(CodeNotFound, "no example for vertical "+vertical))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "example": ex})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "status": "healthy"})
}
