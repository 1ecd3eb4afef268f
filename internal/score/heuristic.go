package score

import (
	"strings"
	"unicode/utf8"
)

const (
	wordPoints        = 3
	wordScoreMax      = 60
	recognitionPoints = 4
	recognitionMax    = 40
	// tokens longer than this count as recognized regardless of content
	recognizedMinLen = 3
)

// commonWords are matched as substrings of a token, not as whole words.
var commonWords = []string{
	"the", "and", "is", "in", "to", "of", "a", "that", "it", "with",
	"as", "for", "was", "on", "are", "be", "this", "have", "or", "by",
}

// breakdown holds the parts of a heuristic score.
type breakdown struct {
	Tokens      int
	Recognized  int
	WordScore   int
	Recognition int
	Total       int
}

// isRecognized reports whether a lowercase token looks like an English word.
func isRecognized(token string) bool {
	if utf8.RuneCountInString(token) > recognizedMinLen {
		return true
	}
	for _, w := range commonWords {
		if strings.Contains(token, w) {
			return true
		}
	}
	return false
}

// heuristic scores text by token count and by how many tokens are recognized.
func heuristic(text string) breakdown {
	tokens := strings.Fields(strings.ToLower(text))

	recognized := 0
	for _, token := range tokens {
		if isRecognized(token) {
			recognized++
		}
	}

	b := breakdown{
		Tokens:      len(tokens),
		Recognized:  recognized,
		WordScore:   min(wordScoreMax, len(tokens)*wordPoints),
		Recognition: min(recognitionMax, recognized*recognitionPoints),
	}
	b.Total = min(MaxScore, b.WordScore+b.Recognition)
	return b
}
