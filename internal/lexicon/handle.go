package lexicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptyLexicon means the source was readable but produced no
	// acceptable word.
	ErrEmptyLexicon = errors.New("lexicon is empty")
	// ErrSourceMissing means the dictionary source does not exist.
	ErrSourceMissing = errors.New("lexicon source missing")
)

// State tags the lifecycle of a Handle.
type State int

const (
	StateNotLoaded State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "not_loaded"
	}
}

// Source opens the raw dictionary.
type Source func(ctx context.Context) (io.ReadCloser, error)

// FileSource reads the dictionary from path.
func FileSource(path string) Source {
	return func(context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return f, err
	}
}

// Handle is the shared, lazily built lexicon. The first Get parses the
// source; concurrent callers wait for that single load. A failed load is
// remembered until Reload.
type Handle struct {
	src  Source
	norm *Normalizer

	group singleflight.Group

	mu    sync.RWMutex
	state State
	lex   *Lexicon
	err   error
	loads int
}

// NewHandle returns a Handle in StateNotLoaded.
func NewHandle(src Source, n *Normalizer) *Handle {
	if n == nil {
		n = NewNormalizer()
	}
	return &Handle{src: src, norm: n}
}

// Normalizer returns the rules words were loaded with.
func (h *Handle) Normalizer() *Normalizer { return h.norm }

// Get returns the loaded lexicon, loading it on first use.
func (h *Handle) Get(ctx context.Context) (*Lexicon, error) {
	h.mu.RLock()
	state, lex, err := h.state, h.lex, h.err
	h.mu.RUnlock()

	switch state {
	case StateLoaded:
		return lex, nil
	case StateFailed:
		return nil, err
	}

	// Detach from the caller's cancellation; other waiters share this load.
	loadCtx := context.WithoutCancel(ctx)
	ch := h.group.DoChan("load", func() (any, error) {
		return h.load(loadCtx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Lexicon), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reload discards any cached result and loads the source again.
func (h *Handle) Reload(ctx context.Context) (*Lexicon, error) {
	h.mu.Lock()
	h.state, h.lex, h.err = StateNotLoaded, nil, nil
	h.mu.Unlock()
	return h.Get(ctx)
}

// State reports the current state and, for StateFailed, the cached reason.
func (h *Handle) State() (State, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state, h.err
}

// Loads returns how many times the source has been parsed.
func (h *Handle) Loads() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loads
}

func (h *Handle) load(ctx context.Context) (*Lexicon, error) {
	h.mu.RLock()
	state, cached, cachedErr := h.state, h.lex, h.err
	h.mu.RUnlock()
	switch state {
	case StateLoaded:
		return cached, nil
	case StateFailed:
		return nil, cachedErr
	}

	lex, err := h.parse(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads++
	if err != nil {
		h.state, h.lex, h.err = StateFailed, nil, err
		return nil, err
	}
	h.state, h.lex, h.err = StateLoaded, lex, nil
	return lex, nil
}

func (h *Handle) parse(ctx context.Context) (*Lexicon, error) {
	if h.src == nil {
		return nil, ErrSourceMissing
	}
	rc, err := h.src(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lex, err := Read(rc, h.norm)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if lex.Len() == 0 {
		return nil, ErrEmptyLexicon
	}
	return lex, nil
}
