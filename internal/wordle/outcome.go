package wordle

import (
	"errors"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

// DefaultMaxAttempts is the number of guesses in a standard game.
const DefaultMaxAttempts = 6

var (
	// ErrGuessAfterWin means a guess follows a winning guess.
	ErrGuessAfterWin = errors.New("guess after a winning guess")
	// ErrGuessLimit means more guesses than the game allows.
	ErrGuessLimit = errors.New("guess limit exceeded")
)

// Outcome derives the game status from evaluated guesses: won when the last
// guess wins, lost when maxAttempts guesses all missed, playing otherwise.
func Outcome(guesses []domain.Guess, maxAttempts int) (domain.GameStatus, error) {
	if len(guesses) > maxAttempts {
		return "", ErrGuessLimit
	}
	for i, g := range guesses {
		if IsWin(g.Statuses) {
			if i != len(guesses)-1 {
				return "", ErrGuessAfterWin
			}
			return domain.GameWon, nil
		}
	}
	if len(guesses) == maxAttempts {
		return domain.GameLost, nil
	}
	return domain.GamePlaying, nil
}
