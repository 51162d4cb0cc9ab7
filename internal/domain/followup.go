package domain

// Bounds for follow-up settings. Values outside these ranges are clamped
// rather than rejected.
const (
	MinFollowUps        = 1
	MaxFollowUpsLimit   = 3
	MinTriggerThreshold = 1
	MaxTriggerThreshold = 5
)

// DefaultFollowUpType is restored when the preferred type set would
// otherwise become empty.
const DefaultFollowUpType = FollowUpClarification

// FollowUpSettings controls whether and how deepening questions are asked.
type FollowUpSettings struct {
	Enabled          bool           `json:"enabled"`
	MaxFollowUps     int            `json:"max_follow_ups"`     // 1-3
	AutoTrigger      bool           `json:"auto_trigger"`
	TriggerThreshold int            `json:"trigger_threshold"`  // 1-5, resolved remotely
	PreferredTypes   []FollowUpType `json:"preferred_types"`
}

// DefaultFollowUpSettings returns the product defaults.
func DefaultFollowUpSettings() FollowUpSettings {
	return FollowUpSettings{
		Enabled:          true,
		MaxFollowUps:     2,
		AutoTrigger:      true,
		TriggerThreshold: 3,
		PreferredTypes:   []FollowUpType{FollowUpClarification, FollowUpDeepening},
	}
}

// Normalize clamps numeric fields into range, drops unknown preferred types
// and restores the default type when the set would be empty.
func (s *FollowUpSettings) Normalize() {
	if s.MaxFollowUps < MinFollowUps {
		s.MaxFollowUps = MinFollowUps
	}
	if s.MaxFollowUps > MaxFollowUpsLimit {
		s.MaxFollowUps = MaxFollowUpsLimit
	}
	if s.TriggerThreshold < MinTriggerThreshold {
		s.TriggerThreshold = MinTriggerThreshold
	}
	if s.TriggerThreshold > MaxTriggerThreshold {
		s.TriggerThreshold = MaxTriggerThreshold
	}

	known := make([]FollowUpType, 0, len(s.PreferredTypes))
	for _, t := range s.PreferredTypes {
		if isKnownFollowUpType(t) {
			known = append(known, t)
		}
	}
	if len(known) == 0 {
		known = []FollowUpType{DefaultFollowUpType}
	}
	s.PreferredTypes = known
}

func isKnownFollowUpType(t FollowUpType) bool {
	for _, k := range KnownFollowUpTypes {
		if t == k {
			return true
		}
	}
	return false
}

// FollowUpQuestion is one candidate deepening question proposed by the
// remote analysis.
type FollowUpQuestion struct {
	Question string       `json:"question"`
	Type     FollowUpType `json:"type"`
	Reason   string       `json:"reason,omitempty"`
	Context  string       `json:"context,omitempty"`
}

// FollowUpAnalysis is the remote engine's decision for one answer. It is
// produced fresh per decision and never persisted.
type FollowUpAnalysis struct {
	ShouldFollowUp bool               `json:"should_follow_up"`
	Questions      []FollowUpQuestion `json:"questions,omitempty"`
	Reasoning      string             `json:"reasoning,omitempty"`
	AnswerQuality  AnswerQuality      `json:"answer_quality,omitempty"`
}
