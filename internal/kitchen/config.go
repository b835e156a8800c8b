package kitchen

// Config carries the policy knobs for the decision components. Thresholds
// live here rather than as literals inside the algorithms so they can be
// overridden and tested.
type Config struct {
	// HoldDecayFactor multiplies a ticket's priority score on every hold.
	HoldDecayFactor float64
	// CriticalRatio and WarningRatio are the elapsed/SLA thresholds for
	// severity classification.
	CriticalRatio float64
	WarningRatio  float64
	// ModelVersion is stamped on generated prep plans.
	ModelVersion string
	// SubstituteLimit caps the candidate list of a substitution suggestion.
	SubstituteLimit int
	// DefaultQueueLimit applies when a queue read passes no explicit limit.
	DefaultQueueLimit int
	// DefaultHoldMinutes applies when a hold passes no explicit delay.
	DefaultHoldMinutes int
}

// DefaultConfig returns the production policy values.
func DefaultConfig() Config {
	return Config{
		HoldDecayFactor:    0.8,
		CriticalRatio:      2.0,
		WarningRatio:       1.2,
		ModelVersion:       "planner-v0",
		SubstituteLimit:    3,
		DefaultQueueLimit:  5,
		DefaultHoldMinutes: 2,
	}
}
