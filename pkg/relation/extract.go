package relation

import (
	"slices"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// highStrength is the strength above which a pair without net conflict is
// considered allied.
const highStrength = 0.7

type pairStats struct {
	character1 string
	character2 string
	count      int
	scenes     []int
}

// Extract derives the relationships between characters from scene text using
// keyword heuristics only. It is a pure function of its inputs.
//
// The candidate set is the roster plus names mined from dialogue tags and
// narrative attributions. Two candidates interact in a scene when both are
// mentioned as whole words. Strength is the pair's interaction count divided
// by the highest count of the batch, and the relationship type comes from
// ally and enemy keyword counts over the scenes the pair shares.
func Extract(characters []common.Character, scenes []common.Scene) []common.Relationship {
	ordered := sortScenes(scenes)

	candidates := candidateSet(characters, ordered)
	if len(candidates) == 0 {
		return []common.Relationship{}
	}

	pairs := countInteractions(candidates, ordered)
	if len(pairs) == 0 {
		return []common.Relationship{}
	}

	maxCount := 1
	for _, p := range pairs {
		maxCount = max(maxCount, p.count)
	}

	texts := make(map[int][]string, len(ordered))
	for _, s := range ordered {
		texts[s.SequenceNumber] = append(texts[s.SequenceNumber], searchableText(s))
	}

	relations := make([]common.Relationship, 0, len(pairs))
	for _, p := range pairs {
		strength := float64(p.count) / float64(maxCount)
		enemyScore, allyScore := scorePair(p, texts)
		relations = append(relations, common.Relationship{
			Character1: p.character1,
			Character2: p.character2,
			Strength:   strength,
			Scenes:     p.scenes,
			Type:       classify(strength, enemyScore, allyScore),
		})
	}

	SortRelationships(relations)
	return relations
}

// sortScenes returns a copy of scenes ordered by sequence number.
func sortScenes(scenes []common.Scene) []common.Scene {
	ordered := slices.Clone(scenes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})
	return ordered
}

func countInteractions(candidates []string, scenes []common.Scene) map[string]*pairStats {
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}

	pairs := make(map[string]*pairStats)
	for _, scene := range scenes {
		text := searchableText(scene)

		var mentioned []int
		for i, name := range lowered {
			if containsWord(text, name) {
				mentioned = append(mentioned, i)
			}
		}

		for i := 0; i < len(mentioned); i++ {
			for j := i + 1; j < len(mentioned); j++ {
				a, b := candidates[mentioned[i]], candidates[mentioned[j]]
				key := pairKey(a, b)
				p, ok := pairs[key]
				if !ok {
					c1, c2 := canonicalPair(a, b)
					p = &pairStats{character1: c1, character2: c2}
					pairs[key] = p
				}
				p.count++
				if !slices.Contains(p.scenes, scene.SequenceNumber) {
					p.scenes = append(p.scenes, scene.SequenceNumber)
				}
			}
		}
	}
	return pairs
}

// scorePair counts enemy and ally keywords over the pair's co-occurrence
// scenes, skipping any scene text that does not mention both characters.
func scorePair(p *pairStats, texts map[int][]string) (enemyScore, allyScore int) {
	n1, n2 := strings.ToLower(p.character1), strings.ToLower(p.character2)
	for _, seq := range p.scenes {
		for _, text := range texts[seq] {
			if !containsWord(text, n1) || !containsWord(text, n2) {
				continue
			}
			enemyScore += countKeywords(text, EnemyKeywords)
			allyScore += countKeywords(text, AllyKeywords)
		}
	}
	return enemyScore, allyScore
}

func classify(strength float64, enemyScore, allyScore int) common.RelationshipType {
	switch {
	case enemyScore > allyScore && enemyScore > 0:
		return common.RelationshipEnemies
	case allyScore > enemyScore && allyScore > 0:
		return common.RelationshipAllies
	case strength > highStrength && allyScore >= enemyScore:
		return common.RelationshipAllies
	default:
		return common.RelationshipNeutral
	}
}

// SortRelationships orders relationships by their canonical pair.
func SortRelationships(relations []common.Relationship) {
	sort.SliceStable(relations, func(i, j int) bool {
		a1, b1 := strings.ToLower(relations[i].Character1), strings.ToLower(relations[j].Character1)
		if a1 != b1 {
			return a1 < b1
		}
		return strings.ToLower(relations[i].Character2) < strings.ToLower(relations[j].Character2)
	})
}
