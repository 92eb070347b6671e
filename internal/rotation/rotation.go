// Package rotation closes the "today" period once the logical day changes.
package rotation

import (
	"log/slog"
	"time"

	"github.com/fakeyudi/pathwise/internal/store"
)

// Manager decides when the store's daily period rolls over. Check is called
// before every period-dependent read or write.
type Manager struct {
	Store     *store.Store
	AutoReset bool
	// ResetHour shifts the day boundary: with ResetHour=4, activity before
	// 04:00 still counts towards the previous day.
	ResetHour int
	Now       func() time.Time // if nil, uses time.Now
	Log       *slog.Logger
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// LogicalDate returns the day t belongs to given the reset hour.
func LogicalDate(t time.Time, resetHour int) string {
	return t.Add(-time.Duration(resetHour) * time.Hour).Format(store.DateLayout)
}

// DayStart returns when the logical day containing t began.
func DayStart(t time.Time, resetHour int) time.Time {
	shifted := t.Add(-time.Duration(resetHour) * time.Hour)
	y, mo, d := shifted.Date()
	return time.Date(y, mo, d, resetHour, 0, 0, 0, t.Location())
}

// Today returns the current logical date.
func (m *Manager) Today() string {
	return LogicalDate(m.now(), m.ResetHour)
}

// Check rotates the store when the marker is older than the current logical
// date. A missing marker is initialized without rotating. Repeated calls on
// the same logical day are no-ops.
func (m *Manager) Check() (bool, error) {
	if !m.AutoReset {
		return false, nil
	}
	today := m.Today()
	last, ok := m.Store.LastReset()
	if !ok {
		return false, m.Store.SetLastReset(today)
	}
	if last == today {
		return false, nil
	}
	if m.Log != nil {
		m.Log.Debug("day changed", "last", last, "today", today)
	}
	if err := m.Store.RotateDay(today); err != nil {
		return false, err
	}
	return true, nil
}
