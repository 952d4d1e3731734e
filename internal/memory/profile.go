package memory

import "github.com/bowerhall/novia/internal/logger"

// UpdateProfile merges newly learned facts into a person's structured
// profile. The merge is append-only with exact-string dedup; nothing
// is ever replaced or removed. Silent no-op when the person is not in
// the document.
func (m *Memory) UpdateProfile(name string, facts ProfileFacts) {
	if name == "" || facts.Empty() {
		return
	}

	_, person := m.FindPerson(name)
	if person == nil {
		return
	}

	person.Profile.Likes = mergeUnique(person.Profile.Likes, facts.Likes, name, "gustos")
	person.Profile.Dislikes = mergeUnique(person.Profile.Dislikes, facts.Dislikes, name, "disgustos")
	person.Profile.Facts = mergeUnique(person.Profile.Facts, facts.Facts, name, "hechos")
}

// AppendDetail adds a free-text detail to a person's record, skipping
// exact repeats. Used by the legacy save-memory tool reply. Returns
// false when the person is unknown.
func (m *Memory) AppendDetail(name, detail string) bool {
	if name == "" || detail == "" {
		return false
	}

	_, person := m.FindPerson(name)
	if person == nil {
		return false
	}

	for _, existing := range person.Details {
		if existing == detail {
			return true
		}
	}

	person.Details = append(person.Details, detail)
	logger.Info("detail remembered", "name", name, "detail", detail)

	return true
}

func mergeUnique(current, incoming []string, name, field string) []string {
	for _, item := range incoming {
		if item == "" {
			continue
		}

		exists := false
		for _, existing := range current {
			if existing == item {
				exists = true
				break
			}
		}

		if !exists {
			current = append(current, item)
			logger.Info("profile updated", "name", name, "field", field, "value", item)
		}
	}

	return current
}
