package relation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// sceneText concatenates the fields consulted for matching, in the order
// dialogue, enhanced prompt, context summary, raw idea. Case is preserved.
func sceneText(scene common.Scene) string {
	return strings.Join([]string{
		scene.DirectorSettings.Dialogue,
		scene.EnhancedPrompt,
		scene.ContextSummary,
		scene.RawIdea,
	}, " ")
}

// searchableText is the lower-cased sceneText.
func searchableText(scene common.Scene) string {
	return strings.ToLower(sceneText(scene))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsWord reports whether word occurs in text without being part of a
// longer word. Both arguments must already be lower-cased.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	offset := 0
	for offset <= len(text) {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// canonicalPair orders two names case-insensitively so that (a, b) and (b, a)
// map to the same pair.
func canonicalPair(a, b string) (string, string) {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la > lb || (la == lb && a > b) {
		return b, a
	}
	return a, b
}

// pairKey is the map key of an unordered, case-insensitive pair.
func pairKey(a, b string) string {
	c1, c2 := canonicalPair(a, b)
	return strings.ToLower(c1) + "\x00" + strings.ToLower(c2)
}
