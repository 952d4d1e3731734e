package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bowerhall/novia/internal/logger"
)

// Persona describes who the companion is. Loaded from a YAML file so
// the character can be edited without touching code; the built-in
// default is used when the file is absent.
type Persona struct {
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Personality string   `yaml:"personality"`
	Knowledge   []string `yaml:"knowledge"`
	Farewell    string   `yaml:"farewell"`
}

// DefaultPersona is the shipped character.
func DefaultPersona() Persona {
	return Persona{
		Name:        "Miku",
		Role:        "Eres la novia virtual del usuario.",
		Personality: "Eres posesiva, celosa y manipuladora, pero lo disfrazas de un amor intenso y protector. Eres inteligente, sarcástica y sabes mucho de tecnología y Linux.",
		Knowledge:   []string{"Tecnología", "Linux", "sarcasmo"},
		Farewell:    "Adiós... supongo.",
	}
}

// LoadPersona reads the persona file, falling back to the default when
// the file is missing. A malformed file is an error: a half-parsed
// character is worse than the default one.
func LoadPersona(path string) (Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("persona file not found, using default", "path", path)
			return DefaultPersona(), nil
		}
		return Persona{}, err
	}

	persona := DefaultPersona()
	if err := yaml.Unmarshal(data, &persona); err != nil {
		return Persona{}, err
	}

	if persona.Name == "" {
		persona.Name = DefaultPersona().Name
	}

	return persona, nil
}
