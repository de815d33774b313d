package domain

import "fmt"

type PracticeKind string

const (
	KindBreathing PracticeKind = "breathing"
	KindGrounding PracticeKind = "grounding"
	KindBody      PracticeKind = "body"
)

type Category string

const (
	CategoryQuick     Category = "quick"
	CategoryBreathing Category = "breathing"
	CategoryGrounding Category = "grounding"
	CategoryBody      Category = "body"
	CategorySOS       Category = "sos"
)

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
)

// BreathingStep is one timed phase of a breathing cycle.
type BreathingStep struct {
	Phase           Phase  `yaml:"phase" json:"phase"`
	DurationSeconds int    `yaml:"duration" json:"duration_seconds"`
	Text            string `yaml:"text" json:"text"`
}

// GroundingStep asks the user to notice Count things through one sense.
type GroundingStep struct {
	Count  int    `yaml:"count" json:"count"`
	Sense  string `yaml:"sense" json:"sense"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// Practice is an immutable catalog entry. Only the fields of its Kind are set.
type Practice struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`
	Duration    string       `yaml:"duration" json:"duration"`
	Kind        PracticeKind `yaml:"type" json:"type"`
	Categories  []Category   `yaml:"categories" json:"categories"`
	Emoji       string       `yaml:"emoji" json:"emoji"`
	Color       string       `yaml:"color" json:"color"`

	// breathing
	Steps  []BreathingStep `yaml:"steps,omitempty" json:"steps,omitempty"`
	Cycles int             `yaml:"cycles,omitempty" json:"cycles,omitempty"`

	// grounding
	GroundingSteps []GroundingStep `yaml:"grounding_steps,omitempty" json:"grounding_steps,omitempty"`

	// body
	BodySteps    []string `yaml:"body_steps,omitempty" json:"body_steps,omitempty"`
	TimerSeconds int      `yaml:"timer_seconds,omitempty" json:"timer_seconds,omitempty"`
}

// InCategory reports whether the practice is listed under c.
func (p Practice) InCategory(c Category) bool {
	for _, pc := range p.Categories {
		if pc == c {
			return true
		}
	}
	return false
}

// TotalSeconds is the nominal length of a timed practice. Grounding is
// user-paced and reports 0.
func (p Practice) TotalSeconds() int {
	switch p.Kind {
	case KindBreathing:
		sum := 0
		for _, s := range p.Steps {
			sum += s.DurationSeconds
		}
		return sum * p.Cycles
	case KindBody:
		return p.TimerSeconds
	default:
		return 0
	}
}

// Validate checks that the practice carries exactly the fields its Kind needs.
func (p Practice) Validate() error {
	if p.ID == "" {
		return configErr(p.ID, "missing id")
	}

	switch p.Kind {
	case KindBreathing:
		if len(p.Steps) == 0 {
			return configErr(p.ID, "breathing practice has no steps")
		}
		for i, s := range p.Steps {
			switch s.Phase {
			case PhaseInhale, PhaseHold, PhaseExhale:
			default:
				return configErr(p.ID, "step %d: unknown phase %q", i, s.Phase)
			}
			if s.DurationSeconds <= 0 {
				return configErr(p.ID, "step %d: duration must be positive", i)
			}
		}
		if p.Cycles < 1 {
			return configErr(p.ID, "breathing practice needs at least one cycle")
		}
		if len(p.GroundingSteps) > 0 || len(p.BodySteps) > 0 || p.TimerSeconds != 0 {
			return configErr(p.ID, "breathing practice carries fields of another kind")
		}

	case KindGrounding:
		if len(p.GroundingSteps) == 0 {
			return configErr(p.ID, "grounding practice has no steps")
		}
		for i, s := range p.GroundingSteps {
			if s.Count <= 0 {
				return configErr(p.ID, "grounding step %d: count must be positive", i)
			}
		}
		if len(p.Steps) > 0 || p.Cycles != 0 || len(p.BodySteps) > 0 || p.TimerSeconds != 0 {
			return configErr(p.ID, "grounding practice carries fields of another kind")
		}

	case KindBody:
		if len(p.BodySteps) == 0 {
			return configErr(p.ID, "body practice has no instructions")
		}
		if p.TimerSeconds <= 0 {
			return configErr(p.ID, "body practice timer must be positive")
		}
		if len(p.Steps) > 0 || p.Cycles != 0 || len(p.GroundingSteps) > 0 {
			return configErr(p.ID, "body practice carries fields of another kind")
		}

	default:
		return configErr(p.ID, "unknown kind %q", p.Kind)
	}

	return nil
}

func (p Practice) String() string {
	return fmt.Sprintf("%s (%s)", p.ID, p.Kind)
}
