// Package extract isolates a candidate place name from a natural-language
// weather question. It is a bounded heuristic (anchored preposition match plus
// a noise-word filter), not an intent classifier.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// anchorPattern captures the phrase following "in"/"at"/"for"/"like",
// terminated by a question mark, end of input, or a trailing temporal/weather
// word. The capture is the raw place candidate before filtering.
var anchorPattern = regexp.MustCompile(`(?i)\b(?:in|at|for|like)\s+(.+?)(?:\?|$| today| tomorrow| right| now| current| weather| forecast)`)

// noiseWords are dropped from the candidate phrase. Question helpers, generic
// weather terms, metric names and time words; anything left should be part of
// a place name.
var noiseWords = map[string]struct{}{
	// question words & helpers
	"what": {}, "is": {}, "the": {}, "tell": {}, "me": {}, "about": {}, "show": {},
	"how": {}, "give": {}, "a": {}, "an": {}, "can": {}, "you": {}, "please": {},
	"provide": {}, "do": {}, "does": {}, "did": {}, "are": {}, "were": {},
	// weather terms
	"weather": {}, "wether": {}, "report": {}, "forecast": {}, "current": {},
	"today": {}, "tomorrow": {}, "going": {}, "to": {}, "rain": {}, "it": {},
	"will": {}, "be": {}, "there": {}, "any": {}, "updates": {},
	// specific metrics
	"temperature": {}, "temp": {}, "wind": {}, "speed": {}, "humidity": {},
	"precipitation": {}, "snow": {}, "sunny": {}, "cloudy": {}, "hot": {},
	"cold": {}, "warm": {}, "cool": {}, "uv": {}, "index": {},
	// time
	"now": {}, "right": {}, "this": {}, "morning": {}, "afternoon": {},
	"evening": {}, "night": {}, "day": {}, "days": {},
	// other
	"check": {}, "look": {}, "search": {}, "find": {},
}

// corrections maps common misspellings and aliases to canonical place names.
// Matched by case-insensitive substring containment, first entry wins, so
// order is significant.
var corrections = []struct {
	match     string
	canonical string
}{
	{"massuri", "Mussoorie"},
	{"uttrakhand", "Uttarakhand"},
	{"dilli", "Delhi"},
	{"mumbai", "Mumbai"},
	{"kolkata", "Kolkata"},
	{"bengaluru", "Bangalore"},
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Candidate returns the place-name candidate extracted from a free-text
// weather question. An empty result means no usable place name was found and
// the caller must not attempt geocoding.
func Candidate(query string) string {
	raw := query
	if m := anchorPattern.FindStringSubmatch(query); m != nil {
		raw = strings.TrimSpace(m[1])
	}

	cleaned := stripPunctuation(raw)

	var kept []string
	for _, w := range strings.Fields(cleaned) {
		if _, noisy := noiseWords[strings.ToLower(w)]; noisy {
			continue
		}
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if containsDigit(w) {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return ""
	}

	candidate := strings.Join(kept, " ")
	lower := strings.ToLower(candidate)
	for _, c := range corrections {
		if strings.Contains(lower, c.match) {
			return c.canonical
		}
	}
	return candidate
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
