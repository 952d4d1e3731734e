package memory

import "encoding/json"

// Category identifies which of the three relationship buckets a person
// lives in. A name appears in at most one category at a time.
type Category string

const (
	CategoryPartner Category = "novio"
	CategoryPast    Category = "exnovios"
	CategoryKnown   Category = "conocidos"
)

type Profile struct {
	Likes    []string `json:"gustos"`
	Dislikes []string `json:"disgustos"`
	Facts    []string `json:"hechos"`
}

type Person struct {
	Name        string   `json:"nombre"`
	Details     []string `json:"detalles"`
	Profile     Profile  `json:"perfil"`
	LastSummary string   `json:"resumen_conversacion"`
}

// NewPerson returns a person record with empty details and profile.
func NewPerson(name string) *Person {
	return &Person{
		Name:    name,
		Details: []string{},
		Profile: Profile{
			Likes:    []string{},
			Dislikes: []string{},
			Facts:    []string{},
		},
	}
}

// Memory is the full relationship document. It is loaded, mutated in
// memory and rewritten whole; nothing patches the file in place.
type Memory struct {
	Partner      *Person   `json:"novio"`
	PastPartners []*Person `json:"exnovios"`
	KnownPeople  []*Person `json:"conocidos"`
}

// NewMemory returns the canonical empty document.
func NewMemory() *Memory {
	return &Memory{
		PastPartners: []*Person{},
		KnownPeople:  []*Person{},
	}
}

// MarshalJSON renders an empty partner slot as {} rather than null,
// matching the on-disk format.
func (m *Memory) MarshalJSON() ([]byte, error) {
	type alias Memory
	doc := struct {
		Partner any `json:"novio"`
		*alias
	}{alias: (*alias)(m)}

	if m.Partner != nil {
		doc.Partner = m.Partner
	} else {
		doc.Partner = struct{}{}
	}

	return json.Marshal(doc)
}

// UnmarshalJSON treats {} (or a record with no name) as an empty slot
// and guarantees non-nil category slices.
func (m *Memory) UnmarshalJSON(data []byte) error {
	type alias Memory
	doc := struct{ *alias }{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if m.Partner != nil && m.Partner.Name == "" {
		m.Partner = nil
	}
	if m.PastPartners == nil {
		m.PastPartners = []*Person{}
	}
	if m.KnownPeople == nil {
		m.KnownPeople = []*Person{}
	}

	return nil
}

// Interaction is one logged user/assistant exchange. Immutable once
// appended to the log.
type Interaction struct {
	Timestamp   float64 `json:"timestamp"`
	Date        string  `json:"fecha"`
	UserName    string  `json:"usuario"`
	UserMessage string  `json:"mensaje_usuario"`
	Response    string  `json:"respuesta_ia"`
}

// ProfileFacts carries newly learned structured facts about a person,
// as extracted from a model reply.
type ProfileFacts struct {
	Likes    []string `json:"gustos"`
	Dislikes []string `json:"disgustos"`
	Facts    []string `json:"hechos"`
}

func (f ProfileFacts) Empty() bool {
	return len(f.Likes) == 0 && len(f.Dislikes) == 0 && len(f.Facts) == 0
}
