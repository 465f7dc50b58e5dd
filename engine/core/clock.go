package core

import "time"

type Clock struct {
	startTime int64
	elapsed   int64
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.startTime != 0 {
		c.elapsed = time.Now().UnixNano() - c.startTime
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now().UnixNano()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = 0
}

// Elapsed returns the seconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return float64(c.elapsed) / float64(time.Second)
}

// ElapsedMS is the elapsed time in whole milliseconds, the time base of
// material expressions.
func (c *Clock) ElapsedMS() uint64 {
	return uint64(c.elapsed / int64(time.Millisecond))
}
