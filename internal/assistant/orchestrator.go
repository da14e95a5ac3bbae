package assistant

import (
	"context"
	"errors"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Defaults for the run polling loop: one status fetch per second, bounded at
// sixty attempts.
const (
	DefaultPollInterval = 1 * time.Second
	DefaultPollAttempts = 60
)

// ErrEmptyAttachment rejects attachments that arrive with no byte content.
var ErrEmptyAttachment = errors.New("attachment has no content")

// Attachment is an in-memory file submitted alongside a question. It lives
// only for the duration of one request.
type Attachment struct {
	Filename string
	Content  []byte
}

// Orchestrator owns the thread/run lifecycle: message submission, run
// execution, polling and result retrieval. It holds no per-request state, so
// one instance serves all concurrent requests.
type Orchestrator struct {
	client       Client
	clock        Clock
	pollInterval time.Duration
	pollAttempts int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces the real clock, used by tests to skip the poll delays.
func WithClock(clock Clock) Option {
	return func(o *Orchestrator) { o.clock = clock }
}

// WithPolling overrides the poll interval and attempt bound.
func WithPolling(interval time.Duration, attempts int) Option {
	return func(o *Orchestrator) {
		if interval > 0 {
			o.pollInterval = interval
		}
		if attempts > 0 {
			o.pollAttempts = attempts
		}
	}
}

func NewOrchestrator(client Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:       client,
		clock:        realClock{},
		pollInterval: DefaultPollInterval,
		pollAttempts: DefaultPollAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateThread opens a new conversation with the provider.
func (o *Orchestrator) CreateThread(ctx context.Context) (Thread, error) {
	thread, err := o.client.CreateThread(ctx)
	if err != nil {
		return Thread{}, &ProviderError{Op: "create-thread", Err: err}
	}
	log.Info().Str("thread_id", thread.ID).Msg("Created assistant thread")
	return thread, nil
}

// SubmitQuestion appends a user message to the thread. An attachment whose
// media kind cannot be inferred from its filename is dropped with a warning
// and the message still goes out text-only.
func (o *Orchestrator) SubmitQuestion(ctx context.Context, threadID, question string, attachment *Attachment) (string, error) {
	var fileIDs []string
	if attachment != nil {
		if len(attachment.Content) == 0 {
			return "", ErrEmptyAttachment
		}
		if attachmentKind(attachment.Filename) == "" {
			log.Warn().
				Str("thread_id", threadID).
				Str("filename", attachment.Filename).
				Msg("Attachment media kind not inferable from filename, submitting text-only")
		} else {
			fileID, err := o.client.UploadFile(ctx, attachment.Filename, attachment.Content)
			if err != nil {
				return "", &ProviderError{Op: "upload-file", Err: err}
			}
			fileIDs = append(fileIDs, fileID)
		}
	}

	messageID, err := o.client.CreateUserMessage(ctx, threadID, question, fileIDs)
	if err != nil {
		return "", &ProviderError{Op: "create-message", Err: err}
	}
	return messageID, nil
}

// RunAndAwait starts a run, polls it to a terminal status and returns the full
// ordered message history of the thread. Each poll is a single idempotent
// status fetch; the loop suspends for the interval before every re-check and
// stops immediately when ctx is cancelled.
func (o *Orchestrator) RunAndAwait(ctx context.Context, threadID string) ([]Message, error) {
	run, err := o.client.CreateRun(ctx, threadID)
	if err != nil {
		return nil, &ProviderError{Op: "create-run", Err: err}
	}
	log.Info().Str("thread_id", threadID).Str("run_id", run.ID).Msg("Started assistant run")

	for attempt := 0; attempt < o.pollAttempts; attempt++ {
		if err := o.clock.Sleep(ctx, o.pollInterval); err != nil {
			return nil, &OperationCancelledError{Err: err}
		}

		run, err = o.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return nil, &ProviderError{Op: "get-run-status", Err: err}
		}
		if !run.Status.Terminal() {
			continue
		}
		if run.Status != RunStatusCompleted {
			return nil, &RunFailedError{RunID: run.ID, Reason: string(run.Status)}
		}

		messages, err := o.client.ListMessages(ctx, threadID)
		if err != nil {
			return nil, &ProviderError{Op: "list-messages", Err: err}
		}
		log.Info().
			Str("run_id", run.ID).
			Int("polls", attempt+1).
			Int("messages", len(messages)).
			Msg("Assistant run completed")
		return messages, nil
	}

	return nil, &RunTimeoutError{
		RunID:    run.ID,
		Attempts: o.pollAttempts,
		Interval: o.pollInterval,
	}
}

// attachmentKind infers the declared media kind from the filename extension.
// Only images are accepted; everything else returns "".
func attachmentKind(filename string) string {
	kind := mime.TypeByExtension(filepath.Ext(filename))
	if strings.HasPrefix(kind, "image/") {
		return kind
	}
	return ""
}
