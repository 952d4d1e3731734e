package memory

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultRecallLimit caps how many past interactions feed the prompt.
const DefaultRecallLimit = 3

// minTokenLen filters short filler words out of the query. Lexical
// overlap over these only adds noise.
const minTokenLen = 4

// RetrieveRelevant scores logged interactions by keyword overlap with
// the query and returns the best matches. Scoring is substring
// containment over the lowercased user+assistant text; ties keep
// chronological order (stable sort), so recent matches with equal
// scores stay in log order. Lexical only, no embeddings.
func RetrieveRelevant(query string, log []Interaction, limit int) []Interaction {
	if limit <= 0 {
		limit = DefaultRecallLimit
	}
	if len(log) == 0 {
		return nil
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		score int
		entry Interaction
	}

	var matches []scored
	for _, entry := range log {
		content := strings.ToLower(entry.UserMessage + " " + entry.Response)

		score := 0
		for _, tok := range tokens {
			if strings.Contains(content, tok) {
				score++
			}
		}

		if score > 0 {
			matches = append(matches, scored{score: score, entry: entry})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]Interaction, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}

	return result
}

func queryTokens(query string) []string {
	seen := map[string]bool{}

	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) < minTokenLen || seen[word] {
			continue
		}
		seen[word] = true
		tokens = append(tokens, word)
	}

	return tokens
}
