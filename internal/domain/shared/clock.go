package shared

import "time"

// Clock abstracts wall time so timestamps and retry backoff can be driven from tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current time in UTC.
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (r *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock is a Clock frozen at CurrentTime. Sleep advances it instead of blocking.
type MockClock struct {
	CurrentTime time.Time
	Slept       []time.Duration
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

func (m *MockClock) Sleep(d time.Duration) {
	m.Slept = append(m.Slept, d)
	m.CurrentTime = m.CurrentTime.Add(d)
}

// After records d like Sleep and returns a channel that has already fired.
func (m *MockClock) After(d time.Duration) <-chan time.Time {
	m.Sleep(d)
	ch := make(chan time.Time, 1)
	ch <- m.CurrentTime
	return ch
}

// Advance moves the mock clock forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// NewMockClock creates a MockClock starting at startTime, or at a fixed
// reference instant when startTime is zero.
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	}
	return &MockClock{CurrentTime: startTime}
}

// FormatTimestamp renders t the way persisted documents store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ParseTimestamp accepts the timestamp layouts found in persisted and imported documents.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
