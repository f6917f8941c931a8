package relation

import "strings"

// KeywordTablesVersion identifies the revision of the tables below. Bump it
// whenever a table changes so persisted keyword analyses can be told apart.
const KeywordTablesVersion = "2026.11"

// TechnicalTerms are production vocabulary words that look like names when
// capitalised at the start of a sentence ("Lens: ..." or "Lighting says ...").
// Any mined candidate containing one of these words is discarded.
var TechnicalTerms = []string{
	// camera
	"camera", "lens", "lenses", "shutter", "aperture", "iso", "focus", "zoom", "angle",
	"shot", "shots", "closeup", "close", "wide", "medium", "pan", "tilt", "dolly",
	"crane", "tracking", "handheld", "steadicam", "drone", "aerial", "overhead", "pov",
	"dutch", "insert", "establishing", "reverse", "shoulder", "frame", "framing",
	"composition", "exposure", "depth", "field", "bokeh", "fps", "mm", "anamorphic",
	"cinematic", "film", "footage", "take",
	// lighting
	"lighting", "light", "lights", "natural", "ambient", "key", "fill", "backlight",
	"rim", "diffused", "soft", "hard", "golden", "hour", "contrast", "silhouette",
	"shadow", "shadows", "neon", "practical", "color", "colour", "grading", "saturation",
	"tone", "warm", "cool",
	// sound
	"sound", "audio", "music", "score", "foley", "ambience", "sfx", "voiceover",
	"narrator", "dialogue", "soundtrack", "silence",
	// editing and vfx
	"cut", "fade", "dissolve", "transition", "montage", "vfx", "cgi", "effects",
	"composite", "render", "green", "screen", "slow", "motion", "timelapse",
	// script headers
	"scene", "sequence", "interior", "exterior", "int", "ext", "day", "night",
	"dawn", "dusk", "continuous", "flashback",
}

// Stopwords are common English words that are never character names.
var Stopwords = []string{
	"the", "a", "an", "and", "or", "but", "if", "then", "so", "not", "no", "yes",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
	"my", "your", "his", "its", "our", "their", "this", "that", "these", "those",
	"there", "here", "when", "where", "what", "who", "why", "how", "which",
	"as", "at", "by", "for", "from", "in", "into", "of", "on", "to", "with",
	"without", "after", "before", "during", "while", "suddenly", "meanwhile",
	"later", "now", "finally", "still", "just", "only", "also", "all", "some",
	"one", "both", "each", "every", "is", "was", "are", "were", "be", "been",
	"oh", "well", "okay", "hey", "someone", "everyone", "nobody", "everybody",
	"something", "nothing", "everything",
}

// ReportingVerbs follow a speaker in narrative attribution ("Ana whispered").
var ReportingVerbs = []string{
	"said", "says", "replied", "answered", "whispered", "shouted", "exclaimed",
	"muttered", "thought",
}

// BodyNouns follow a possessive in narrative attribution ("Ben's voice").
var BodyNouns = []string{"voice", "hand", "eyes", "face", "body"}

// RoleNouns precede a name in narrative attribution ("the hero Ana").
var RoleNouns = []string{"protagonist", "hero", "villain", "antagonist", "character"}

// EnemyKeywords signal conflict, violence or antagonism. Terms are matched as
// lower-case substrings, so "attack" also counts "attacked" and "attacks".
var EnemyKeywords = []string{
	"fight", "fought", "attack", "murder", "killing", "killer", "hatred", "hated", "hates",
	"enemy", "enemies", "against", "betray", "rivalry", "nemesis", "oppose", "threat", "conflict",
	"battle", "fit of rage", "in a rage", "with rage", "enraged", "revenge", "argue", "argument",
	"angry", "destroy", "hurt", "confront", "struggle", "ambush", "duel",
}

// AllyKeywords signal cooperation, affection or loyalty.
var AllyKeywords = []string{
	"friend", "allies", "alliance", "trust", "help", "together", "side by side",
	"protect", "in love", "beloved", "loving", "loyal", "support", "partner", "rescue",
	"comforted", "comforting", "embrace", "hugged", "thank", "forgive", "reunite",
}

var (
	technicalSet = toSet(TechnicalTerms)
	stopwordSet  = toSet(Stopwords)
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// IsTechnicalTerm reports whether word is in the technical denylist.
func IsTechnicalTerm(word string) bool {
	_, ok := technicalSet[strings.ToLower(word)]
	return ok
}

// IsStopword reports whether word is a common English stopword.
func IsStopword(word string) bool {
	_, ok := stopwordSet[strings.ToLower(word)]
	return ok
}

// countKeywords sums the occurrences of every term in text. Text must already
// be lower-cased.
func countKeywords(text string, terms []string) int {
	total := 0
	for _, term := range terms {
		total += strings.Count(text, term)
	}
	return total
}
