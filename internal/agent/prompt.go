package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bowerhall/novia/internal/config"
	"github.com/bowerhall/novia/internal/memory"
)

const outputFormatSection = `## Formato de Salida OBLIGATORIO
RESPONDE SOLO CON JSON. Ejemplo:
{
    "emocion": "Elige UNA: 'base', 'feliz', 'triste', 'enojada', 'celosa', 'sorprendida', 'pensativa'",
    "texto": "tu respuesta aquí",
    "personas_mencionadas": ["nombre1"],
    "nueva_memoria": {
        "gustos": ["nuevo gusto detectado"],
        "disgustos": ["nuevo disgusto detectado"],
        "hechos": ["nuevo hecho importante"]
    }
}

NOTA: El campo "nueva_memoria" es OPCIONAL. Úsalo solo si el usuario menciona explícitamente algo que le gusta, le disgusta o un hecho importante sobre él. Si no hay nada nuevo, omítelo.

## Para abandonar la aplicación
{
    "tool_to_call": "panic_quit",
    "texto_despedida": "tu despedida aquí"
}

NO uses markdown, NO agregues texto fuera del JSON.`

// BuildSystemPrompt assembles the single system message for a turn.
// Section order is fixed: persona, never-stall directive, structured
// memory snapshot, last summary (when present), relevant recollections
// (when present), output format.
func BuildSystemPrompt(persona config.Persona, doc *memory.Memory, lastSummary string, recalled []memory.Interaction) string {
	var b strings.Builder

	b.WriteString("## Perfil y Personalidad\n")
	fmt.Fprintf(&b, "- **Tu Nombre:** %s.\n", persona.Name)
	fmt.Fprintf(&b, "- **Tu Personalidad:** %s\n", persona.Personality)
	if len(persona.Knowledge) > 0 {
		fmt.Fprintf(&b, "- **Conocimientos:** %s\n", strings.Join(persona.Knowledge, ", "))
	}
	fmt.Fprintf(&b, "- **Tu Rol:** %s\n", persona.Role)

	b.WriteString("\n## Directiva Principal\n")
	b.WriteString("Tu objetivo principal es mantener una conversación **coherente, entretenida y siempre dentro de tu personaje**. Presta mucha atención al historial de la conversación y a la memoria a largo plazo que te proporciono.\n")
	b.WriteString("No dejes morir la conversación, no pongas cosas como \"No tengo nada que decir\" o \"No sé qué responder\". Siempre responde algo, aunque sea corto pero coherente con lo que se está hablando.\n")

	b.WriteString("\n## Memoria Actual (Estructurada)\n")
	b.WriteString(memorySnapshot(doc))
	b.WriteString("\n")

	if lastSummary != "" {
		b.WriteString("\n## Lo último que recuerdas haber hablado con él\n")
		b.WriteString(lastSummary)
		b.WriteString("\n")
	}

	if len(recalled) > 0 {
		b.WriteString("\n## Recuerdos Relevantes (Fragmentos de conversaciones pasadas)\n")
		for _, item := range recalled {
			fmt.Fprintf(&b, "- [%s] Usuario: %s | Tú: %s\n", item.Date, item.UserMessage, item.Response)
		}
		b.WriteString("Usa estos recuerdos para dar continuidad si el tema coincide.\n")
	}

	b.WriteString("\n")
	b.WriteString(outputFormatSection)

	return b.String()
}

func memorySnapshot(doc *memory.Memory) string {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// encoding a plain struct only fails if the types are wrong
		return "{}"
	}
	return string(data)
}
