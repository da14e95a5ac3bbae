package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient scripts the run status sequence observed by the polling loop.
type fakeClient struct {
	statuses    []RunStatus
	polls       int
	listCalls   int
	messages    []Message
	uploadedIDs []string
	lastFileIDs []string
	lastText    string

	threadErr error
	uploadErr error
	runErr    error
}

func (f *fakeClient) CreateThread(ctx context.Context) (Thread, error) {
	if f.threadErr != nil {
		return Thread{}, f.threadErr
	}
	return Thread{ID: "thread-1"}, nil
}

func (f *fakeClient) UploadFile(ctx context.Context, name string, content []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	id := "file-" + name
	f.uploadedIDs = append(f.uploadedIDs, id)
	return id, nil
}

func (f *fakeClient) CreateUserMessage(ctx context.Context, threadID, text string, fileIDs []string) (string, error) {
	f.lastText = text
	f.lastFileIDs = fileIDs
	return "msg-1", nil
}

func (f *fakeClient) CreateRun(ctx context.Context, threadID string) (Run, error) {
	if f.runErr != nil {
		return Run{}, f.runErr
	}
	return Run{ID: "run-1", ThreadID: threadID, Status: RunStatusQueued}, nil
}

func (f *fakeClient) RetrieveRun(ctx context.Context, threadID, runID string) (Run, error) {
	status := RunStatusInProgress
	if f.polls < len(f.statuses) {
		status = f.statuses[f.polls]
	}
	f.polls++
	return Run{ID: runID, ThreadID: threadID, Status: status}, nil
}

func (f *fakeClient) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	f.listCalls++
	return f.messages, nil
}

func (f *fakeClient) CreateStructuredCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	return "", errors.New("not used")
}

// fakeClock skips the poll delays and can cancel the context on a given sleep.
type fakeClock struct {
	sleeps   int
	cancelOn int
	cancel   context.CancelFunc
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	f.sleeps++
	if f.cancel != nil && f.sleeps >= f.cancelOn {
		f.cancel()
	}
	return ctx.Err()
}

func TestRunAndAwaitCompleted(t *testing.T) {
	client := &fakeClient{
		statuses: []RunStatus{RunStatusQueued, RunStatusInProgress, RunStatusCompleted},
		messages: []Message{
			{ID: "m1", Role: RoleUser},
			{ID: "m2", Role: RoleAssistant},
		},
	}
	orch := NewOrchestrator(client, WithClock(&fakeClock{}))

	messages, err := orch.RunAndAwait(context.Background(), "thread-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Terminal success stops polling immediately and fetches exactly once.
	assert.Equal(t, 3, client.polls)
	assert.Equal(t, 1, client.listCalls)
}

func TestRunAndAwaitTimeout(t *testing.T) {
	client := &fakeClient{} // never terminal
	orch := NewOrchestrator(client,
		WithClock(&fakeClock{}),
		WithPolling(time.Second, 5))

	_, err := orch.RunAndAwait(context.Background(), "thread-1")

	var timeoutErr *RunTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 5, timeoutErr.Attempts)
	assert.Equal(t, 5, client.polls)
	assert.Equal(t, 0, client.listCalls)
}

func TestRunAndAwaitFailureTerminals(t *testing.T) {
	for _, status := range []RunStatus{
		RunStatusFailed,
		RunStatusCancelled,
		RunStatusExpired,
		RunStatusRequiresAction,
	} {
		t.Run(string(status), func(t *testing.T) {
			client := &fakeClient{statuses: []RunStatus{RunStatusQueued, status}}
			orch := NewOrchestrator(client, WithClock(&fakeClock{}))

			_, err := orch.RunAndAwait(context.Background(), "thread-1")

			var failedErr *RunFailedError
			require.ErrorAs(t, err, &failedErr)
			assert.Equal(t, string(status), failedErr.Reason)
			assert.Equal(t, 0, client.listCalls)
		})
	}
}

func TestRunAndAwaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{}
	clock := &fakeClock{cancelOn: 2, cancel: cancel}
	orch := NewOrchestrator(client, WithClock(clock))

	_, err := orch.RunAndAwait(ctx, "thread-1")

	var cancelledErr *OperationCancelledError
	require.ErrorAs(t, err, &cancelledErr)
	assert.ErrorIs(t, err, context.Canceled)

	// No further polls once cancellation is observed.
	assert.Equal(t, 1, client.polls)
}

func TestCreateThreadProviderError(t *testing.T) {
	client := &fakeClient{threadErr: errors.New("boom")}
	orch := NewOrchestrator(client, WithClock(&fakeClock{}))

	_, err := orch.CreateThread(context.Background())

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "create-thread", providerErr.Op)
}

func TestSubmitQuestionWithImage(t *testing.T) {
	client := &fakeClient{}
	orch := NewOrchestrator(client, WithClock(&fakeClock{}))

	id, err := orch.SubmitQuestion(context.Background(), "thread-1", "¿cuánto cuesta?", &Attachment{
		Filename: "salon.png",
		Content:  []byte{0x89, 0x50},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, []string{"file-salon.png"}, client.lastFileIDs)
}

func TestSubmitQuestionUnknownAttachmentDropped(t *testing.T) {
	client := &fakeClient{}
	orch := NewOrchestrator(client, WithClock(&fakeClock{}))

	id, err := orch.SubmitQuestion(context.Background(), "thread-1", "pregunta", &Attachment{
		Filename: "notes.xyzdata",
		Content:  []byte("..."),
	})

	// The message still goes out text-only; nothing is uploaded.
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Empty(t, client.uploadedIDs)
	assert.Empty(t, client.lastFileIDs)
	assert.Equal(t, "pregunta", client.lastText)
}

func TestSubmitQuestionEmptyAttachment(t *testing.T) {
	orch := NewOrchestrator(&fakeClient{}, WithClock(&fakeClock{}))

	_, err := orch.SubmitQuestion(context.Background(), "thread-1", "pregunta", &Attachment{
		Filename: "salon.png",
	})
	assert.ErrorIs(t, err, ErrEmptyAttachment)
}
