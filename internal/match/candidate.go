package match

import (
	"cmp"
	"slices"
)

// SuggestScore is the minimum score for a name to be suggested.
const SuggestScore = 0.5

// Candidate is a known name that may be what the user meant.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores names against target, best first. Type names are also
// compared without their package qualifier, and the better score is kept.
func Rank(target string, names []string) []Candidate {
	norm, short := Normalize(target), Normalize(unqualified(target))

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		score := max(
			Similarity(norm, Normalize(name)),
			Similarity(short, Normalize(unqualified(name))),
		)

		out = append(out, Candidate{Name: name, Score: score})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to limit names similar enough to target to be offered
// as "did you mean" alternatives.
func Suggest(target string, names []string, limit int) []string {
	var out []string
	for _, c := range Rank(target, names) {
		if len(out) == limit || c.Score < SuggestScore {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
