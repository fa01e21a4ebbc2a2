// Package wordle holds the pure game rules: scoring a guess against a secret
// under duplicate-letter semantics, and deriving player statistics from a
// chronological list of finished attempts. Nothing here touches storage or
// logs; every function is deterministic and safe for concurrent use.
package wordle

import "github.com/tbourn/go-wordle-backend/internal/domain"

// Evaluate scores guess against secret. Both must be canonical and of equal
// length; callers validate beforehand.
//
// Pass 1 marks exact positions correct and consumes that letter from both
// words. Pass 2 walks the remaining guess letters left to right and marks a
// letter present while the secret still holds an unconsumed copy of it,
// consuming one copy each time; everything else is absent. A letter is
// therefore never credited more times than it occurs in secret.
func Evaluate(secret, guess string) []domain.LetterStatus {
	s := []rune(secret)
	g := []rune(guess)
	out := make([]domain.LetterStatus, len(g))

	// remaining counts letters of secret not consumed by pass 1
	remaining := make(map[rune]int, len(s))
	for i := range g {
		if i < len(s) && g[i] == s[i] {
			out[i] = domain.StatusCorrect
			continue
		}
		if i < len(s) {
			remaining[s[i]]++
		}
	}
	// secret letters past len(guess) never matched positionally
	for i := len(g); i < len(s); i++ {
		remaining[s[i]]++
	}

	for i, r := range g {
		if out[i] == domain.StatusCorrect {
			continue
		}
		if remaining[r] > 0 {
			out[i] = domain.StatusPresent
			remaining[r]--
			continue
		}
		out[i] = domain.StatusAbsent
	}
	return out
}

// IsWin reports whether every status is correct. An empty slice is not a win.
func IsWin(statuses []domain.LetterStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, st := range statuses {
		if st != domain.StatusCorrect {
			return false
		}
	}
	return true
}
