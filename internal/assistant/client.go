package assistant

import (
	"context"
	"errors"
	"sort"

	openai "github.com/sashabaranov/go-openai"
)

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RunStatus is the observed state of one assistant processing cycle.
// Transitions are provider-owned; this system only reads them.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
	RunStatusRequiresAction RunStatus = "requires_action"
)

// Terminal reports whether no further transition can occur. Statuses outside
// the known set are treated as still in flight.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled,
		RunStatusExpired, RunStatusRequiresAction:
		return true
	}
	return false
}

// Thread is the opaque provider-side conversation handle.
type Thread struct {
	ID string `json:"thread_id"`
}

// Run is one processing cycle over a thread.
type Run struct {
	ID       string
	ThreadID string
	Status   RunStatus
}

// ContentPart is one ordered piece of a message. Text is empty for non-text
// parts, which downstream consumers discard.
type ContentPart struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// Message is a conversation entry as read back from the provider.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Parts     []ContentPart `json:"content"`
	CreatedAt int64         `json:"created_at"`
}

// CompletionRequest describes a schema-constrained completion call: the model
// is forced to invoke the named function, so the reply is always the
// function's JSON arguments.
type CompletionRequest struct {
	SystemPrompt        string
	UserText            string
	FunctionName        string
	FunctionDescription string
	Schema              any
}

// Client is the thin typed boundary with the assistant provider. Implemented
// by OpenAIClient in production and by fakes in tests.
type Client interface {
	CreateThread(ctx context.Context) (Thread, error)
	UploadFile(ctx context.Context, name string, content []byte) (string, error)
	CreateUserMessage(ctx context.Context, threadID, text string, fileIDs []string) (string, error)
	CreateRun(ctx context.Context, threadID string) (Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (Run, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
	CreateStructuredCompletion(ctx context.Context, req CompletionRequest) (string, error)
}

// ClientConfig holds the provider credentials and model selection. One client
// is constructed at application start and injected everywhere it is needed.
type ClientConfig struct {
	APIKey      string
	AssistantID string
	Model       string
}

// OpenAIClient implements Client against the OpenAI Assistants and chat
// completion APIs.
type OpenAIClient struct {
	api         *openai.Client
	assistantID string
	model       string
}

func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	return &OpenAIClient{
		api:         openai.NewClient(cfg.APIKey),
		assistantID: cfg.AssistantID,
		model:       cfg.Model,
	}
}

func (c *OpenAIClient) CreateThread(ctx context.Context) (Thread, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return Thread{}, err
	}
	return Thread{ID: thread.ID}, nil
}

func (c *OpenAIClient) UploadFile(ctx context.Context, name string, content []byte) (string, error) {
	file, err := c.api.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    name,
		Bytes:   content,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", err
	}
	return file.ID, nil
}

func (c *OpenAIClient) CreateUserMessage(ctx context.Context, threadID, text string, fileIDs []string) (string, error) {
	msg, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(RoleUser),
		Content: text,
		FileIds: fileIDs,
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (c *OpenAIClient) CreateRun(ctx context.Context, threadID string) (Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: c.assistantID,
	})
	if err != nil {
		return Run{}, err
	}
	return convertRun(run), nil
}

func (c *OpenAIClient) RetrieveRun(ctx context.Context, threadID, runID string) (Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return Run{}, err
	}
	return convertRun(run), nil
}

// ListMessages returns the thread history normalized to oldest-first,
// regardless of the order the provider answers in.
func (c *OpenAIClient) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	order := "asc"
	list, err := c.api.ListMessage(ctx, threadID, nil, &order, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		messages = append(messages, convertMessage(m))
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages, nil
}

func (c *OpenAIClient) CreateStructuredCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserText},
		},
		Functions: []openai.FunctionDefinition{{
			Name:        req.FunctionName,
			Description: req.FunctionDescription,
			Parameters:  req.Schema,
		}},
		FunctionCall: openai.FunctionCall{Name: req.FunctionName},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.FunctionCall == nil {
		return "", errors.New("completion returned no function call")
	}
	return resp.Choices[0].Message.FunctionCall.Arguments, nil
}

func convertRun(run openai.Run) Run {
	status := RunStatus(run.Status)
	// Cancelling is transient; keep polling until the provider settles it.
	if run.Status == openai.RunStatusCancelling {
		status = RunStatusInProgress
	}
	return Run{ID: run.ID, ThreadID: run.ThreadID, Status: status}
}

func convertMessage(m openai.Message) Message {
	parts := make([]ContentPart, 0, len(m.Content))
	for _, c := range m.Content {
		part := ContentPart{Kind: c.Type}
		if c.Text != nil {
			part.Kind = "text"
			part.Text = c.Text.Value
		}
		parts = append(parts, part)
	}
	return Message{
		ID:        m.ID,
		Role:      Role(m.Role),
		Parts:     parts,
		CreatedAt: int64(m.CreatedAt),
	}
}
