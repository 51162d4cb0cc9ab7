package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InterviewPolicy is the product policy around a session: the fixed
// opening and closing questions injected around the generated list, how
// many questions to generate, and the interviewer personas on offer.
type InterviewPolicy struct {
	OpeningQuestion string   `yaml:"opening_question"`
	ClosingQuestion string   `yaml:"closing_question"`
	QuestionCount   int      `yaml:"question_count"`
	DefaultPersona  string   `yaml:"default_persona"`
	Personas        []string `yaml:"personas"`
}

// DefaultInterviewPolicy returns the shipped policy, used when no policy
// file is present.
func DefaultInterviewPolicy() *InterviewPolicy {
	return &InterviewPolicy{
		OpeningQuestion: "Please introduce yourself briefly.",
		ClosingQuestion: "Do you have any questions for me?",
		QuestionCount:   5,
		DefaultPersona:  "professional",
		Personas:        []string{"professional", "friendly", "strict"},
	}
}

// LoadInterviewPolicy reads the policy from a YAML file. A missing file is
// not an error; the defaults apply.
func LoadInterviewPolicy(filename string) (*InterviewPolicy, error) {
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return DefaultInterviewPolicy(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", filename, err)
	}

	policy := DefaultInterviewPolicy()
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", filename, err)
	}
	if err := validatePolicy(policy); err != nil {
		return nil, fmt.Errorf("invalid policy file %s: %w", filename, err)
	}
	return policy, nil
}

func validatePolicy(policy *InterviewPolicy) error {
	if policy.OpeningQuestion == "" {
		return fmt.Errorf("opening_question must not be empty")
	}
	if policy.ClosingQuestion == "" {
		return fmt.Errorf("closing_question must not be empty")
	}
	if policy.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be greater than 0")
	}
	if policy.DefaultPersona == "" {
		return fmt.Errorf("default_persona must not be empty")
	}
	for i, persona := range policy.Personas {
		if persona == "" {
			return fmt.Errorf("persona %d must not be empty", i)
		}
	}
	return nil
}

// Persona returns the requested persona when it is on offer, the default
// persona otherwise.
func (p *InterviewPolicy) Persona(requested string) string {
	for _, persona := range p.Personas {
		if persona == requested {
			return requested
		}
	}
	return p.DefaultPersona
}
