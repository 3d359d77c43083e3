package shared

import "time"

// Clock abstracts time so lock lease handling can be tested without sleeping
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock implements Clock using the system time
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time in UTC
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep blocks for the given duration
func (c *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock implements Clock with controllable time for tests
type MockClock struct {
	CurrentTime time.Time
}

func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{CurrentTime: start}
}

// Now returns the mock's current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Sleep advances the mock clock without blocking
func (c *MockClock) Sleep(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Advance moves the mock clock forward
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
