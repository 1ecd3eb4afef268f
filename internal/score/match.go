package score

import "strings"

// matchPunctuation is stripped from both the transcript and the targets
// before comparing words.
const matchPunctuation = ".,/#!$%^&*;:{}=-_`~()"

var punctuationStripper = strings.NewReplacer(punctuationPairs()...)

func punctuationPairs() []string {
	pairs := make([]string, 0, 2*len(matchPunctuation))
	for _, r := range matchPunctuation {
		pairs = append(pairs, string(r), "")
	}
	return pairs
}

func matchWords(text string) []string {
	return strings.Fields(punctuationStripper.Replace(strings.ToLower(text)))
}

// Match produces an external score on the 0..20 scale by comparing a spoken
// transcript with the sentences the speaker was asked to read.
//
// Every spoken word found among the target words counts once, repeats
// included; the score is floor(matches/targetWords*20), capped at 20.
func Match(spoken string, targets []string) int {
	spokenWords := matchWords(spoken)
	targetWords := matchWords(strings.Join(targets, " "))
	if len(spokenWords) == 0 || len(targetWords) == 0 {
		return 0
	}

	known := make(map[string]struct{}, len(targetWords))
	for _, w := range targetWords {
		known[w] = struct{}{}
	}

	matches := 0
	for _, w := range spokenWords {
		if _, ok := known[w]; ok {
			matches++
		}
	}

	return min(ExternalScoreMax, matches*ExternalScoreMax/len(targetWords))
}
