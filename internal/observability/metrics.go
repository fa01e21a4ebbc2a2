package observability

import "github.com/prometheus/client_golang/prometheus"

// Game engine collectors. Label values are fixed sets (mode, kind, result)
// so cardinality stays bounded.
var (
	// WordsIssued counts issued words by mode (daily, infinite).
	WordsIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_words_issued_total",
			Help: "Total number of words issued.",
		},
		[]string{"mode"},
	)

	// IssueConflicts counts persistence conflicts hit while issuing, by the
	// index that rejected the insert (key, word).
	IssueConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_issue_conflicts_total",
			Help: "Total number of issuance conflicts resolved by retry.",
		},
		[]string{"kind"},
	)

	// DefinitionFailures counts enrichment lookups that fell back to the
	// placeholder definition.
	DefinitionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_definition_failures_total",
			Help: "Total number of definition lookups that failed or timed out.",
		},
	)

	// OrphanedWords counts infinite words issued without an attempt because
	// the attempt insert failed. Such words stay issued and unplayed.
	OrphanedWords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_orphaned_words_total",
			Help: "Total number of infinite words issued without a session attempt.",
		},
	)

	// LexiconWords gauges the size of the loaded lexicon.
	LexiconWords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordle_lexicon_words",
			Help: "Number of candidate words in the loaded lexicon.",
		},
	)

	// Guesses counts evaluated guesses by result (win, miss, rejected).
	Guesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_total",
			Help: "Total number of guesses evaluated.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(WordsIssued, IssueConflicts, DefinitionFailures, OrphanedWords, LexiconWords, Guesses)
}
