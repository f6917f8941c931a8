package relation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

const (
	minNameLength = 2
	maxNameLength = 29
	maxNameWords  = 2
)

const capitalisedWord = `\p{Lu}\p{Ll}+`

// Go regexp has no lookbehind, so the patterns consume one non-letter before
// a name to keep "McCoy" from yielding "Coy".
const (
	nameStart = `(?:^|[^\p{L}])`
	nameEnd   = `(?:$|[^\p{L}])`
)

var (
	// Ana: "..." or Ana Lee: “...”
	dialoguePattern = regexp.MustCompile(
		nameStart + `(` + capitalisedWord + `(?:[ \t]+` + capitalisedWord + `)?):[ \t]*["“]`,
	)
	// Ana whispered
	reportingPattern = regexp.MustCompile(
		nameStart + `(` + capitalisedWord + `)\s+(?:` + strings.Join(ReportingVerbs, "|") + `)\b`,
	)
	// Ben's eyes
	possessivePattern = regexp.MustCompile(
		nameStart + `(` + capitalisedWord + `)['’]s\s+(?:` + strings.Join(BodyNouns, "|") + `)\b`,
	)
	// the villain Mara
	rolePattern = regexp.MustCompile(
		`\b(?i:` + strings.Join(RoleNouns, "|") + `)\s+(` + capitalisedWord + `)` + nameEnd,
	)

	namePatterns = []*regexp.Regexp{dialoguePattern, reportingPattern, possessivePattern, rolePattern}
)

// MineNames scans text for names attributed by dialogue tags or narrative
// patterns and returns those that pass validName, in order of appearance per
// pattern. Duplicates are not removed. A two-word speaker tag that fails the
// filters is retried with its last word.
func MineNames(text string) []string {
	var names []string
	for _, p := range namePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			words := strings.Fields(m[1])
			name := strings.Join(words, " ")
			if validName(name) {
				names = append(names, name)
				continue
			}
			// "Then Ana: ..." captures a leading sentence word.
			if len(words) > 1 && validName(words[len(words)-1]) {
				names = append(names, words[len(words)-1])
			}
		}
	}
	return names
}

// validName applies the filters for mined names: length bounds, word count and
// the technical and stopword denylists, checked word by word.
func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return false
	}
	words := strings.Fields(name)
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		if IsTechnicalTerm(w) || IsStopword(w) {
			return false
		}
	}
	return true
}

// candidateSet builds the names considered for extraction: the roster (always
// trusted, never filtered) followed by names mined from the scenes.
// Candidates are unique case-insensitively and the first spelling wins, so
// roster spellings take precedence.
func candidateSet(characters []common.Character, scenes []common.Scene) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	for _, c := range characters {
		add(c.Name)
	}
	for _, s := range scenes {
		for _, name := range MineNames(sceneText(s)) {
			add(name)
		}
	}
	return out
}
