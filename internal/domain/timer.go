package domain

// Bounds for per-question time limits, in seconds.
const (
	MinTimePerQuestion = 60
	MaxTimePerQuestion = 1800
)

// TimerConfig controls the per-question countdown.
type TimerConfig struct {
	Enabled         bool `json:"enabled"`
	TimePerQuestion int  `json:"time_per_question"` // seconds, 60-1800
	AutoSubmit      bool `json:"auto_submit"`
	ShowWarning     bool `json:"show_warning"`
}

// DefaultTimerConfig returns the product defaults.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Enabled:         true,
		TimePerQuestion: 180,
		AutoSubmit:      false,
		ShowWarning:     true,
	}
}

// Normalize clamps the time limit into range.
func (c *TimerConfig) Normalize() {
	if c.TimePerQuestion < MinTimePerQuestion {
		c.TimePerQuestion = MinTimePerQuestion
	}
	if c.TimePerQuestion > MaxTimePerQuestion {
		c.TimePerQuestion = MaxTimePerQuestion
	}
}

// WarningThreshold is the remaining-seconds mark at which the one-shot
// warning fires. Fixed relative to the limit: a quarter of the limit,
// capped at one minute.
func (c TimerConfig) WarningThreshold() int {
	threshold := c.TimePerQuestion / 4
	if threshold > 60 {
		threshold = 60
	}
	return threshold
}
