package review

import (
	"context"
	"fmt"
	"log/slog"

	"recall/internal/api"
	"recall/internal/config"
	"recall/internal/logging"
	"recall/internal/services"
)

// LearningClient is the slice of the API client the engine needs.
type LearningClient interface {
	TodayTasks(ctx context.Context, dictionaryID int64, limit int) (*api.TodayTasks, error)
	SubmitOutcome(ctx context.Context, sub api.Submission) error
}

// Option customises Engine construction.
type Option func(*Engine)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine serves a finite, ordered queue of due words for one sitting and
// enforces the reveal-before-grade rule. Methods are synchronous and the
// engine is not safe for concurrent use; one review session runs on one
// goroutine, so no two outcome submissions are ever in flight together.
type Engine struct {
	client       LearningClient
	logger       *slog.Logger
	dictionaryID int64
	limit        int

	words       []api.Word
	cursor      int
	completed   int
	revealed    bool
	finished    bool
	loaded      bool
	reviewCount int
	newCount    int
}

// New builds a review engine for one dictionary sitting.
func New(client LearningClient, cfg *config.Config, dictionaryID int64, limit int, opts ...Option) *Engine {
	if dictionaryID <= 0 && cfg != nil {
		dictionaryID = cfg.Review.DictionaryID
	}
	if limit <= 0 && cfg != nil {
		limit = cfg.Review.Limit
	}

	engine := &Engine{
		client:       client,
		logger:       logging.NewNop(),
		dictionaryID: dictionaryID,
		limit:        limit,
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.logger == nil {
		engine.logger = logging.NewNop()
	}
	return engine
}

// Load fetches the due set and resets the session. An empty set is a valid
// terminal outcome, not an error: the session starts finished.
func (e *Engine) Load(ctx context.Context) error {
	tasks, err := e.client.TodayTasks(ctx, e.dictionaryID, e.limit)
	if err != nil {
		return err
	}

	e.words = tasks.Words
	e.cursor = 0
	e.completed = 0
	e.revealed = false
	e.finished = len(tasks.Words) == 0
	e.loaded = true
	e.reviewCount = tasks.ReviewCount
	e.newCount = tasks.NewCount

	e.logger.Info("review session loaded",
		slog.String(logging.FieldComponent, "review"),
		slog.Int64(logging.FieldDictionaryID, e.dictionaryID),
		slog.Int("words", len(e.words)),
		slog.Int("review_count", tasks.ReviewCount),
		slog.Int("new_count", tasks.NewCount),
	)
	return nil
}

// Restart discards the completed queue and fetches a fresh due set with the
// same parameters. The new set may be empty if nothing more is due.
func (e *Engine) Restart(ctx context.Context) error {
	return e.Load(ctx)
}

// Current returns the word at the cursor, or false when the queue is spent.
func (e *Engine) Current() (api.Word, bool) {
	if !e.loaded || e.cursor >= len(e.words) {
		return api.Word{}, false
	}
	return e.words[e.cursor], true
}

// Reveal flips the current word face-up. Idempotent, purely local.
func (e *Engine) Reveal() error {
	if _, ok := e.Current(); !ok {
		return services.Wrap(services.ErrValidation, "review", "reveal", "no current word", nil)
	}
	e.revealed = true
	return nil
}

// Revealed reports whether the current word is face-up.
func (e *Engine) Revealed() bool {
	return e.revealed
}

// SubmitOutcome forwards the grade for the current word. Valid only after
// Reveal; quality is an opaque 0..5 passed through to the backend scheduler.
// On failure the cursor does not advance and the word stays revealed so the
// learner can retry without losing their place.
func (e *Engine) SubmitOutcome(ctx context.Context, quality int) error {
	word, ok := e.Current()
	if !ok {
		return services.Wrap(services.ErrValidation, "review", "submit", "no current word", nil)
	}
	if !e.revealed {
		return services.Wrap(services.ErrValidation, "review", "submit", "word not revealed", nil)
	}
	if quality < 0 || quality > 5 {
		return services.Wrap(services.ErrValidation, "review", "submit",
			fmt.Sprintf("quality %d outside 0..5", quality), nil)
	}

	sub := api.Submission{WordID: word.ID, Quality: quality, DictionaryID: e.dictionaryID}
	if err := e.client.SubmitOutcome(ctx, sub); err != nil {
		return err
	}

	e.logger.Debug("outcome submitted",
		slog.String(logging.FieldComponent, "review"),
		slog.Int64(logging.FieldDictionaryID, e.dictionaryID),
		slog.Int64(logging.FieldWordID, word.ID),
		slog.Int("quality", quality),
	)

	e.completed++
	e.cursor++
	e.revealed = false
	if e.cursor >= len(e.words) {
		e.finished = true
	}
	return nil
}

// Finished reports whether the sitting is over: the queue was spent by
// advances, or the initial fetch was empty.
func (e *Engine) Finished() bool {
	return e.finished
}

// Progress returns how many words were completed out of the session total.
func (e *Engine) Progress() (completed, total int) {
	return e.completed, len(e.words)
}

// DictionaryID returns the dictionary this engine reviews, after config
// fallback resolution.
func (e *Engine) DictionaryID() int64 {
	return e.dictionaryID
}

// Counts returns the server-reported split of the due set.
func (e *Engine) Counts() (reviewCount, newCount int) {
	return e.reviewCount, e.newCount
}
