package importer

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"recall/internal/api"
	"recall/internal/config"
	"recall/internal/logging"
	"recall/internal/services"
)

// State is the tracker's local view of an import, distinct from the
// server-side task status it mirrors while polling.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StatePolling    State = "polling"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// UploadClient is the slice of the API client the tracker needs.
type UploadClient interface {
	UploadDictionary(ctx context.Context, name, description, fileContent string) (string, error)
	UploadStatus(ctx context.Context, taskID string) (*api.ImportStatus, error)
}

// Option customises Tracker construction.
type Option func(*Tracker)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithInterval overrides the poll interval (used in tests).
func WithInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		t.interval = interval
	}
}

// Tracker turns a one-shot dictionary upload into an observable, terminating
// progress stream. One poll loop runs per tracker at a time; submitting again
// cancels any loop still running.
type Tracker struct {
	client     UploadClient
	logger     *slog.Logger
	interval   time.Duration
	graceDelay time.Duration

	mu      sync.Mutex
	state   State
	job     api.ImportStatus
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a tracker using the configured poll interval and grace delay.
func New(client UploadClient, cfg *config.Config, opts ...Option) *Tracker {
	interval := 2 * time.Second
	grace := 2 * time.Second
	if cfg != nil {
		if cfg.Upload.PollInterval > 0 {
			interval = time.Duration(cfg.Upload.PollInterval) * time.Second
		}
		grace = time.Duration(cfg.Upload.GraceDelay) * time.Second
	}

	tracker := &Tracker{
		client:     client,
		logger:     logging.NewNop(),
		interval:   interval,
		graceDelay: grace,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(tracker)
	}
	if tracker.logger == nil {
		tracker.logger = logging.NewNop()
	}
	return tracker
}

// GraceDelay is how long a completed import should stay visible before the
// caller navigates away. Product decision surfaced through config, not
// hardcoded in the view layer.
func (t *Tracker) GraceDelay() time.Duration {
	return t.graceDelay
}

// Submit validates the file locally, uploads it, and starts the poll loop.
// Only plain-text word lists are accepted; anything else is rejected before
// any network call.
func (t *Tracker) Submit(ctx context.Context, path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return "", services.Wrap(services.ErrValidation, "importer", "submit",
			fmt.Sprintf("%s is not a .txt word list", filepath.Base(path)), nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "importer", "submit", "read word list", err)
	}

	t.Stop()

	t.mu.Lock()
	t.state = StateSubmitting
	t.job = api.ImportStatus{}
	t.lastErr = nil
	t.mu.Unlock()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	encoded := base64.StdEncoding.EncodeToString(content)

	taskID, err := t.client.UploadDictionary(ctx, name, "", encoded)
	if err != nil {
		t.mu.Lock()
		t.state = StateFailed
		t.lastErr = err
		t.mu.Unlock()
		return "", err
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	t.state = StatePolling
	t.job = api.ImportStatus{TaskID: taskID, Status: api.TaskPending, Progress: 0}
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	t.logger.Info("upload submitted",
		slog.String(logging.FieldComponent, "importer"),
		slog.String(logging.FieldTaskID, taskID),
	)

	go t.poll(pollCtx, taskID, done)
	return taskID, nil
}

// poll fetches status snapshots strictly sequentially: the next poll is
// scheduled only after the previous response resolves, and the loop exits the
// instant a terminal status is observed.
func (t *Tracker) poll(ctx context.Context, taskID string, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		status, err := t.client.UploadStatus(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.logger.Warn("status poll failed",
				slog.String(logging.FieldComponent, "importer"),
				slog.String(logging.FieldTaskID, taskID),
				slog.String("error", err.Error()),
			)
			t.mu.Lock()
			t.lastErr = err
			t.mu.Unlock()
			timer.Reset(t.interval)
			continue
		}

		terminal := t.apply(*status)
		if terminal {
			return
		}
		timer.Reset(t.interval)
	}
}

// apply replaces the tracked job with the fresh snapshot and reports whether
// it was terminal. Progress never moves backwards while non-terminal.
func (t *Tracker) apply(status api.ImportStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !status.Status.Terminal() && status.Progress < t.job.Progress {
		status.Progress = t.job.Progress
	}
	t.job = status
	t.lastErr = nil

	switch status.Status {
	case api.TaskCompleted:
		t.state = StateDone
	case api.TaskFailed:
		t.state = StateFailed
	default:
		return false
	}
	return true
}

// Snapshot returns the tracker state, the latest job snapshot, and the last
// poll error if the most recent poll failed.
func (t *Tracker) Snapshot() (State, api.ImportStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.job, t.lastErr
}

// Wait blocks until the running poll loop finishes or the context ends.
func (t *Tracker) Wait(ctx context.Context) (api.ImportStatus, error) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		select {
		case <-ctx.Done():
			return api.ImportStatus{}, ctx.Err()
		case <-done:
		}
	}

	state, job, lastErr := t.Snapshot()
	if state == StateFailed && lastErr != nil {
		return job, lastErr
	}
	return job, nil
}

// Stop cancels the active poll loop and waits for it to exit. Safe to call
// repeatedly and when nothing is running; this is also the teardown path when
// the user navigates away mid-import.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
