package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
)

// Responder is one backup employee in the roster file.
type Responder struct {
	Name  string `yaml:"name,omitempty"`
	Phone string `yaml:"phone" validate:"required,e164"`
}

// Roster is the on-disk list of backup responders, in order of preference.
type Roster struct {
	Responders []Responder `yaml:"responders" validate:"required,min=1,dive"`
}

// ErrNoResponders is returned when neither RESPONDER_NUMBERS nor ROSTER_FILE yields a number.
var ErrNoResponders = errors.New("no responders configured: set RESPONDER_NUMBERS or ROSTER_FILE")

var validate = validator.New()

// LoadRoster reads and validates a YAML roster.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	for i := range roster.Responders {
		roster.Responders[i].Phone = domain.NormalizeIdentity(roster.Responders[i].Phone)
	}
	if err := validate.Struct(&roster); err != nil {
		return nil, fmt.Errorf("invalid roster %s: %w", path, err)
	}
	return &roster, nil
}

// Responders resolves the ordered candidate pool. The roster file wins over
// RESPONDER_NUMBERS when both are set; duplicates keep their first position.
func (r ResponderConfig) Responders() ([]string, error) {
	var numbers []string
	if r.RosterFile != "" {
		roster, err := LoadRoster(r.RosterFile)
		if err != nil {
			return nil, err
		}
		for _, resp := range roster.Responders {
			numbers = append(numbers, resp.Phone)
		}
	} else {
		for _, raw := range r.Numbers {
			n := domain.NormalizeIdentity(raw)
			if err := validate.Var(n, "required,e164"); err != nil {
				return nil, fmt.Errorf("invalid responder number %q: %w", raw, err)
			}
			numbers = append(numbers, n)
		}
	}

	seen := make(map[string]struct{}, len(numbers))
	pool := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		pool = append(pool, n)
	}
	if len(pool) == 0 {
		return nil, ErrNoResponders
	}
	return pool, nil
}
