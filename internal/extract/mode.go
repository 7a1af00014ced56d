package extract

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode is the kind of figure search a query calls for
type Mode string

const (
	ModeAuto        Mode = "auto"
	ModeName        Mode = "name"
	ModeDescription Mode = "description"
)

// ParseMode maps a user-supplied mode name to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeName:
		return ModeName, nil
	case ModeDescription, "desc":
		return ModeDescription, nil
	default:
		return "", fmt.Errorf("unknown search mode: %s (supported: auto, name, description)", s)
	}
}

var (
	nameParticles = []string{" de ", " da ", " von ", " van ", " el ", " al-"}
	nameTitles    = []string{"sir ", "lord ", "lady ", "dr. ", "professor ", "saint ", "st. "}

	descAdjectives = []string{
		"famous", "great", "influential", "notable", "renowned",
		"american", "british", "french", "ancient", "modern", "classical",
	}
	descPlurals = []string{"writers", "authors", "poets", "philosophers", "scientists", "historians", "politicians"}
	descPeriods = []string{"century", "era", "period", "age", "renaissance", "medieval", "victorian", "modern"}
	descQueries = []string{"who", "what", "which", "type of", "kind of"}
)

// Signals counts the name-like and description-like cues in a query
type Signals struct {
	Name        int
	Description int
}

// ScoreQuery computes the name and description signal counts for query.
// Keyword cues are substring matches against the lower-cased query.
func ScoreQuery(query string) Signals {
	lower := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(query)

	capitalized := 0
	for _, w := range words {
		if r, _ := utf8.DecodeRuneInString(w); unicode.IsUpper(r) {
			capitalized++
		}
	}

	var s Signals
	for _, hit := range []bool{
		capitalized >= 2,
		containsAny(lower, nameParticles),
		len(words) <= 3 && utf8.RuneCountInString(query) <= 30,
		containsAny(lower, nameTitles),
	} {
		if hit {
			s.Name++
		}
	}
	for _, hit := range []bool{
		containsAny(lower, descAdjectives),
		containsAny(lower, descPlurals),
		containsAny(lower, descPeriods),
		len(words) > 4,
		containsAny(lower, descQueries),
	} {
		if hit {
			s.Description++
		}
	}
	return s
}

// DetectMode classifies a query as a figure name or a description of the
// kind of figure wanted. Ambiguous queries are treated as descriptions.
func DetectMode(query string) Mode {
	s := ScoreQuery(query)
	switch {
	case s.Description >= 2:
		return ModeDescription
	case s.Name >= 2 && s.Description == 0:
		return ModeName
	default:
		return ModeDescription
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
