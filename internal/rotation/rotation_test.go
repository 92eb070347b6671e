package rotation

import (
	"os"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/pathwise/internal/store"
)

func newManager(t *testing.T, now *time.Time) (*Manager, *store.Store) {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return &Manager{Store: s, AutoReset: true, Now: func() time.Time { return *now }}, s
}

func TestLogicalDate(t *testing.T) {
	at := time.Date(2026, 3, 2, 3, 30, 0, 0, time.Local)
	if got := LogicalDate(at, 0); got != "2026-03-02" {
		t.Errorf("reset_hour 0: got %s", got)
	}
	if got := LogicalDate(at, 4); got != "2026-03-01" {
		t.Errorf("reset_hour 4 before boundary: got %s", got)
	}
	if got := LogicalDate(at.Add(time.Hour), 4); got != "2026-03-02" {
		t.Errorf("reset_hour 4 after boundary: got %s", got)
	}
}

func TestDayStart(t *testing.T) {
	at := time.Date(2026, 3, 2, 3, 30, 0, 0, time.UTC)
	if got := DayStart(at, 0); !got.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("reset_hour 0: got %v", got)
	}
	if got := DayStart(at, 4); !got.Equal(time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("reset_hour 4: got %v", got)
	}
}

func TestCheckInitializesMarker(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	m, s := newManager(t, &now)
	if err := s.RecordVisit("~/a"); err != nil {
		t.Fatal(err)
	}

	rotated, err := m.Check()
	if err != nil || rotated {
		t.Fatalf("first check: rotated=%v err=%v", rotated, err)
	}
	if d, _ := s.LastReset(); d != "2026-03-02" {
		t.Errorf("marker: got %q", d)
	}
	if len(s.Today()) != 1 {
		t.Error("initializing the marker must not touch today's data")
	}
}

func TestCheckRotatesOnNewDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	m, s := newManager(t, &now)
	if _, err := m.Check(); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordVisit("~/a"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(24 * time.Hour)
	rotated, err := m.Check()
	if err != nil || !rotated {
		t.Fatalf("new day: rotated=%v err=%v", rotated, err)
	}
	if len(s.Today()) != 0 {
		t.Error("today should be empty")
	}
	if y := s.Yesterday(); len(y) != 1 || y[0].Path != "~/a" {
		t.Errorf("yesterday: %+v", y)
	}
}

func TestCheckDisabled(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	m, s := newManager(t, &now)
	m.AutoReset = false
	if rotated, err := m.Check(); rotated || err != nil {
		t.Fatalf("disabled: rotated=%v err=%v", rotated, err)
	}
	if _, err := os.Stat(s.Path(store.LastResetFile)); !os.IsNotExist(err) {
		t.Error("disabled manager must not write the marker")
	}
}

// Feature: pathwise, Property: rotation is idempotent per logical day.
func TestCheckIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
		m, s := newManager(t, &now)
		if err := s.SetLastReset("2026-03-01"); err != nil {
			rt.Fatal(err)
		}
		if err := s.RecordVisit("~/a"); err != nil {
			rt.Fatal(err)
		}

		calls := rapid.IntRange(2, 6).Draw(rt, "calls")
		rotations := 0
		for range calls {
			rotated, err := m.Check()
			if err != nil {
				rt.Fatal(err)
			}
			if rotated {
				rotations++
			}
			now = now.Add(time.Duration(rapid.IntRange(0, 600).Draw(rt, "step")) * time.Second)
		}
		if rotations != 1 {
			rt.Fatalf("want exactly one rotation, got %d", rotations)
		}
		if y := s.Yesterday(); len(y) != 1 {
			rt.Fatalf("yesterday should keep the rotated record, got %+v", y)
		}
	})
}
