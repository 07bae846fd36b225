package embedding

import "strings"

// HashString returns a non-negative polynomial hash of s.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}

func wordsOf(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
