package diagstore

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "diagnoses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDiagnosis(t *testing.T, in diagnosis.Input) *diagnosis.Diagnosis {
	t.Helper()
	d, err := diagnosis.Diagnose(in)
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	return d
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := diagnosis.Input{
		Revenue:   642000,
		Margin:    -0.23,
		CAC:       67,
		LTV:       1300,
		PainPoint: "low_margins",
		Vertical:  "waste-management",
	}
	d := testDiagnosis(t, in)

	saved, err := s.Save("user-1", in, d)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved record must have an id")
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("record not found after save")
	}
	if got.UserID != "user-1" || got.PrimaryConstraint != d.PrimaryConstraint || got.Confidence != d.Confidence {
		t.Fatalf("core fields differ: %+v", got)
	}
	if got.Revenue != in.Revenue || got.Margin != in.Margin || got.CAC != in.CAC || got.LTV != in.LTV {
		t.Fatalf("input snapshot differs: %+v", got)
	}
	if got.PainPoint != in.PainPoint || got.Vertical != in.Vertical {
		t.Fatalf("input strings differ: %+v", got)
	}
	if !reflect.DeepEqual(got.Reasoning, d.Reasoning) {
		t.Fatalf("reasoning: got %v, want %v", got.Reasoning, d.Reasoning)
	}
	if !reflect.DeepEqual(got.NextSteps, d.NextSteps) {
		t.Fatalf("next steps: got %v, want %v", got.NextSteps, d.NextSteps)
	}
	if !reflect.DeepEqual(got.MetaAnalysis, d.MetaAnalysis) {
		t.Fatalf("meta analysis: got %+v, want %+v", got.MetaAnalysis, d.MetaAnalysis)
	}
	if !reflect.DeepEqual(got.AlternativeConstraints, d.AlternativeConstraints) {
		t.Fatalf("alternatives: got %v, want %v", got.AlternativeConstraints, d.AlternativeConstraints)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	s.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})

	in := diagnosis.Input{Revenue: 500000, Margin: 0.2, CAC: 150, LTV: 1500, PainPoint: "cant_get_leads"}
	d := testDiagnosis(t, in)

	var ids []string
	for i := 0; i < 3; i++ {
		rec, err := s.Save("user-a", in, d)
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, rec.ID)
	}
	if _, err := s.Save("user-b", in, d); err != nil {
		t.Fatalf("save other user: %v", err)
	}

	recs, err := s.ListByUser("user-a", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	// Newest first: the last save comes back first.
	for i, rec := range recs {
		if rec.ID != ids[2-i] {
			t.Fatalf("position %d: got %s, want %s", i, rec.ID, ids[2-i])
		}
		if rec.UserID != "user-a" {
			t.Fatalf("foreign record leaked into listing: %+v", rec)
		}
	}
}

func TestListByUserLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	s.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})

	in := diagnosis.Input{Revenue: 500000, Margin: 0.2, CAC: 150, LTV: 1500}
	d := testDiagnosis(t, in)
	for i := 0; i < 5; i++ {
		if _, err := s.Save("user-a", in, d); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	recs, err := s.ListByUser("user-a", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing record, got %+v", got)
	}
}

func TestSaveRequiresUser(t *testing.T) {
	s := newTestStore(t)
	in := diagnosis.Input{Revenue: 500000, Margin: 0.2}
	d := testDiagnosis(t, in)
	if _, err := s.Save("", in, d); err == nil {
		t.Fatal("expected error for empty user id")
	}
}
