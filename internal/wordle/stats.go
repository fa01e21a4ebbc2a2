package wordle

import (
	"math"
	"time"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

// Result is the slice of an attempt that statistics depend on.
type Result struct {
	Won         bool
	Guesses     int
	CompletedAt time.Time
}

// ResultOf extracts a Result from a finished attempt. Attempts without a
// completion time fall back to UpdatedAt.
func ResultOf(a domain.Attempt) Result {
	at := a.UpdatedAt
	if a.CompletedAt != nil {
		at = *a.CompletedAt
	}
	n := a.AttemptCount
	if n == 0 {
		n = len(a.Guesses)
	}
	return Result{Won: a.Status == domain.GameWon, Guesses: n, CompletedAt: at}
}

// ComputeStats aggregates results, which must be in chronological order.
// Completion dates are compared as calendar days in loc (UTC when nil).
//
// Streak policy: a win exactly one day after the previous win extends the
// streak; a win after a gap, or the first win, restarts it at 1; a second
// win on the same day leaves it unchanged; a loss resets it to 0 and drops
// the anchor date.
func ComputeStats(results []Result, maxAttempts int, loc *time.Location) domain.Stats {
	if loc == nil {
		loc = time.UTC
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	st := domain.Stats{Distribution: make([]int, maxAttempts)}

	var (
		lastWin    time.Time
		hasLastWin bool
	)
	for _, r := range results {
		st.Played++
		if !r.Won {
			st.CurrentStreak = 0
			hasLastWin = false
			continue
		}

		st.Wins++
		if r.Guesses >= 1 && r.Guesses <= maxAttempts {
			st.Distribution[r.Guesses-1]++
		}

		day := civilDay(r.CompletedAt, loc)
		switch {
		case !hasLastWin:
			st.CurrentStreak = 1
		default:
			switch diff := daysBetween(lastWin, day); {
			case diff == 1:
				st.CurrentStreak++
			case diff > 1 || diff < 0:
				st.CurrentStreak = 1
			}
		}
		lastWin, hasLastWin = day, true
		if st.CurrentStreak > st.MaxStreak {
			st.MaxStreak = st.CurrentStreak
		}
	}

	if st.Played > 0 {
		st.WinRate = int(math.Round(100 * float64(st.Wins) / float64(st.Played)))
	}
	return st
}

// civilDay truncates t to midnight of its calendar day in loc, expressed in UTC
// so that DST shifts do not skew day arithmetic.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
