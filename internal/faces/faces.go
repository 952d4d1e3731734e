// Package faces holds the ASCII face for each emotion the companion
// can display.
package faces

var faces = map[string]string{
	"base": `
   ╭───────────╮
   │  ●     ●  │
   │     ‿     │
   ╰───────────╯`,
	"feliz": `
   ╭───────────╮
   │  ^     ^  │
   │    ︶     │
   ╰───────────╯`,
	"triste": `
   ╭───────────╮
   │  ●     ●  │
   │     ︵    │
   ╰───────────╯`,
	"enojada": `
   ╭───────────╮
   │  ╲●   ●╱  │
   │     ︿    │
   ╰───────────╯`,
	"celosa": `
   ╭───────────╮
   │  ¬     ¬  │
   │     ~     │
   ╰───────────╯`,
	"sorprendida": `
   ╭───────────╮
   │  ○     ○  │
   │     ○     │
   ╰───────────╯`,
	"pensativa": `
   ╭───────────╮
   │  ●     ─  │
   │     …     │
   ╰───────────╯`,
}

// Get returns the face for an emotion, falling back to the base face
// for tags it doesn't know.
func Get(emotion string) string {
	if face, ok := faces[emotion]; ok {
		return face
	}
	return faces["base"]
}

// Emotions lists every emotion with a dedicated face.
func Emotions() []string {
	out := make([]string, 0, len(faces))
	for emotion := range faces {
		out = append(out, emotion)
	}
	return out
}
