package memory

import (
	"fmt"
	"strings"

	"github.com/bowerhall/novia/internal/logger"
)

// FindPerson looks a name up across the three categories. Matching is
// case-insensitive and exact; the partner slot is checked first.
func (m *Memory) FindPerson(name string) (Category, *Person) {
	lower := strings.ToLower(name)

	if m.Partner != nil && strings.ToLower(m.Partner.Name) == lower {
		return CategoryPartner, m.Partner
	}

	for _, ex := range m.PastPartners {
		if strings.ToLower(ex.Name) == lower {
			return CategoryPast, ex
		}
	}

	for _, known := range m.KnownPeople {
		if strings.ToLower(known.Name) == lower {
			return CategoryKnown, known
		}
	}

	return "", nil
}

// RegisterPerson adds a new known person with an empty profile.
// Returns false without touching the document when the name already
// resolves anywhere; callers use the result to announce newly met
// people exactly once.
func (m *Memory) RegisterPerson(name string) bool {
	if name == "" {
		return false
	}

	if cat, _ := m.FindPerson(name); cat != "" {
		return false
	}

	m.KnownPeople = append(m.KnownPeople, NewPerson(name))
	logger.Info("new person registered", "name", name)

	return true
}

// PromoteToPartner moves a past partner back into the partner slot.
// A sitting partner is appended to past partners first, unless an
// entry with the same name is already there. No-op when the name is
// not a past partner.
func (m *Memory) PromoteToPartner(name string) {
	lower := strings.ToLower(name)

	var promoted *Person
	for i, ex := range m.PastPartners {
		if strings.ToLower(ex.Name) == lower {
			promoted = ex
			m.PastPartners = append(m.PastPartners[:i], m.PastPartners[i+1:]...)
			break
		}
	}

	if promoted == nil {
		return
	}

	if m.Partner != nil && m.Partner.Name != "" {
		sitting := strings.ToLower(m.Partner.Name)
		already := false
		for _, ex := range m.PastPartners {
			if strings.ToLower(ex.Name) == sitting {
				already = true
				break
			}
		}
		if !already {
			m.PastPartners = append(m.PastPartners, m.Partner)
		}
	}

	m.Partner = promoted
	logger.Info("partner promoted", "name", promoted.Name)
}

// DemotePartner retires the current partner into past partners,
// attaching a conversation summary when one is provided. An existing
// past entry with the same name is replaced so the freshest data wins.
// No-op when the slot is empty or the name does not match.
func (m *Memory) DemotePartner(nameHint, summary string) {
	if m.Partner == nil {
		return
	}

	lower := strings.ToLower(nameHint)
	if strings.ToLower(m.Partner.Name) != lower {
		return
	}

	departing := m.Partner
	if summary != "" {
		departing.LastSummary = summary
	}

	m.Partner = nil

	for i, ex := range m.PastPartners {
		if strings.ToLower(ex.Name) == lower {
			m.PastPartners[i] = departing
			logger.Info("partner demoted, past entry refreshed", "name", departing.Name)
			return
		}
	}

	m.PastPartners = append(m.PastPartners, departing)
	logger.Info("partner demoted", "name", departing.Name)
}

// Validate reports names that appear in more than one category. The
// move operations keep the document consistent on their own; this is
// an integrity check for documents edited or produced elsewhere.
func (m *Memory) Validate() error {
	seen := map[string]Category{}

	check := func(p *Person, cat Category) error {
		lower := strings.ToLower(p.Name)
		if prior, ok := seen[lower]; ok {
			return fmt.Errorf("name %q present in both %s and %s", p.Name, prior, cat)
		}
		seen[lower] = cat
		return nil
	}

	if m.Partner != nil {
		if err := check(m.Partner, CategoryPartner); err != nil {
			return err
		}
	}
	for _, ex := range m.PastPartners {
		if err := check(ex, CategoryPast); err != nil {
			return err
		}
	}
	for _, known := range m.KnownPeople {
		if err := check(known, CategoryKnown); err != nil {
			return err
		}
	}

	return nil
}
