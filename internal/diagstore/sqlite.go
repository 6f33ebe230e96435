// Package diagstore persists completed diagnoses to SQLite so returning
// users can review their history.
package diagstore

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
)

// Record is a stored diagnosis plus the inputs that produced it.
type Record struct {
	ID                     string
	UserID                 string
	PrimaryConstraint      diagnosis.ConstraintCategory
	Confidence             int
	Explanation            string
	Revenue                float64
	Margin                 float64
	CAC                    float64
	LTV                    float64
	PainPoint              string
	Vertical               string
	CustomerType           string
	CustomerTrigger        string
	AcquisitionChannel     string
	MetaAnalysis           diagnosis.MetaAnalysis
	Reasoning              []string
	AlternativeConstraints []diagnosis.Alternative
	NextSteps              []string
	CreatedAt              time.Time
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS diagnoses (
	id                      TEXT PRIMARY KEY,
	user_id                 TEXT NOT NULL,
	primary_constraint      TEXT NOT NULL,
	confidence              INTEGER NOT NULL,
	explanation             TEXT NOT NULL DEFAULT '',
	revenue                 REAL NOT NULL DEFAULT 0,
	margin                  REAL NOT NULL DEFAULT 0,
	cac                     REAL NOT NULL DEFAULT 0,
	ltv                     REAL NOT NULL DEFAULT 0,
	pain_point              TEXT NOT NULL DEFAULT '',
	vertical                TEXT NOT NULL DEFAULT '',
	customer_type           TEXT NOT NULL DEFAULT '',
	customer_trigger        TEXT NOT NULL DEFAULT '',
	acquisition_channel     TEXT NOT NULL DEFAULT '',
	meta_analysis           TEXT,
	reasoning               TEXT NOT NULL DEFAULT '[]',
	alternative_constraints TEXT NOT NULL DEFAULT '[]',
	next_steps              TEXT NOT NULL DEFAULT '[]',
	created_at              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diagnoses_user ON diagnoses (user_id, created_at DESC);
`

// Store is a SQLite-backed diagnosis archive. A single connection with WAL
// keeps writes serialized without locking errors under light concurrency.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock overrides the timestamp source. Tests use it for stable ordering.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Save archives a diagnosis for a user and returns the stored record.
func (s *Store) Save(userID string, in diagnosis.Input, d *diagnosis.Diagnosis) (*Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required")
	}
	rec := &Record{
		ID:                     generateID(),
		UserID:                 userID,
		PrimaryConstraint:      d.PrimaryConstraint,
		Confidence:             d.Confidence,
		Explanation:            d.Explanation,
		Revenue:                in.Revenue,
		Margin:                 in.Margin,
		CAC:                    in.CAC,
		LTV:                    in.LTV,
		PainPoint:              in.PainPoint,
		Vertical:               in.Vertical,
		CustomerType:           in.CustomerType,
		CustomerTrigger:        in.CustomerTrigger,
		AcquisitionChannel:     in.AcquisitionChannel,
		MetaAnalysis:           d.MetaAnalysis,
		Reasoning:              d.Reasoning,
		AlternativeConstraints: d.AlternativeConstraints,
		NextSteps:              d.NextSteps,
		CreatedAt:              s.now().UTC(),
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO diagnoses (id, user_id, primary_constraint, confidence, explanation,
		revenue, margin, cac, ltv, pain_point, vertical, customer_type, customer_trigger, acquisition_channel,
		meta_analysis, reasoning, alternative_constraints, next_steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.UserID,
		string(rec.PrimaryConstraint),
		rec.Confidence,
		rec.Explanation,
		rec.Revenue,
		rec.Margin,
		rec.CAC,
		rec.LTV,
		rec.PainPoint,
		rec.Vertical,
		rec.CustomerType,
		rec.CustomerTrigger,
		rec.AcquisitionChannel,
		nullableJSON(rec.MetaAnalysis),
		marshalJSON(rec.Reasoning),
		marshalJSON(rec.AlternativeConstraints),
		marshalJSON(rec.NextSteps),
		timeToString(rec.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert diagnosis: %w", err)
	}
	return rec, nil
}

// Get returns a single diagnosis by id, or nil when not found.
func (s *Store) Get(id string) (*Record, error) {
	rows, err := s.db.Query(selectColumns+" FROM diagnoses WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRecord(rows)
}

// ListByUser returns a user's diagnoses, newest first.
func (s *Store) ListByUser(userID string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(selectColumns+" FROM diagnoses WHERE user_id = ? ORDER BY created_at DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const selectColumns = `SELECT id, user_id, primary_constraint, confidence, explanation,
	revenue, margin, cac, ltv, pain_point, vertical, customer_type, customer_trigger, acquisition_channel,
	meta_analysis, reasoning, alternative_constraints, next_steps, created_at`

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		rec          Record
		constraint   string
		meta         sql.NullString
		reasoning    string
		alternatives string
		nextSteps    string
		createdAt    string
	)
	if err := rows.Scan(&rec.ID, &rec.UserID, &constraint, &rec.Confidence, &rec.Explanation,
		&rec.Revenue, &rec.Margin, &rec.CAC, &rec.LTV, &rec.PainPoint, &rec.Vertical,
		&rec.CustomerType, &rec.CustomerTrigger, &rec.AcquisitionChannel,
		&meta, &reasoning, &alternatives, &nextSteps, &createdAt); err != nil {
		return nil, err
	}
	rec.PrimaryConstraint = diagnosis.ConstraintCategory(constraint)
	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &rec.MetaAnalysis); err != nil {
			return nil, fmt.Errorf("decode meta_analysis: %w", err)
		}
	}
	if err := decodeJSONColumn(reasoning, &rec.Reasoning); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(alternatives, &rec.AlternativeConstraints); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(nextSteps, &rec.NextSteps); err != nil {
		return nil, err
	}
	if createdAt != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		rec.CreatedAt = t
	}
	return &rec, nil
}

func decodeJSONColumn(col string, dst any) error {
	if col == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col), dst); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func marshalJSON(v any) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nullableJSON(v any) sql.NullString {
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
