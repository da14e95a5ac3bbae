package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/extractor"
)

// IncomingMessage mirrors the message shape clients post back for conversion:
// the content is kept loose here and validated at the extraction boundary.
type IncomingMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// TextToJSONRequest is the body of the text-to-json-event endpoint.
type TextToJSONRequest struct {
	Messages []IncomingMessage `json:"messages"`
}

func (s *Server) createThread(c echo.Context) error {
	thread, err := s.orchestrator.CreateThread(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, thread)
}

func (s *Server) userQuestion(c echo.Context) error {
	threadID := c.FormValue("thread_id")
	question := c.FormValue("question")
	if threadID == "" || question == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "thread_id and question are required",
		})
	}

	// The optional image is buffered fully in memory for the duration of
	// this request; nothing is persisted.
	var attachment *assistant.Attachment
	if fileHeader, err := c.FormFile("image"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return s.httpError(c, err)
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return s.httpError(c, err)
		}
		attachment = &assistant.Attachment{
			Filename: fileHeader.Filename,
			Content:  content,
		}
	}

	ctx := c.Request().Context()
	if _, err := s.orchestrator.SubmitQuestion(ctx, threadID, question, attachment); err != nil {
		return s.httpError(c, err)
	}

	messages, err := s.orchestrator.RunAndAwait(ctx, threadID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

func (s *Server) textToJSON(c echo.Context) error {
	var req TextToJSONRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	text, ok := extractor.LatestAssistantReply(toMessages(req.Messages))
	if !ok {
		// Soft failure: no assistant reply in the thread, hand the
		// caller their input back untouched.
		return c.JSON(http.StatusOK, req.Messages)
	}

	collection, err := s.extractor.ExtractBudgets(c.Request().Context(), text)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, collection)
}

// toMessages converts the loose inbound message shape into typed messages.
// Only plain string content parts survive, matching the extraction contract.
func toMessages(incoming []IncomingMessage) []assistant.Message {
	messages := make([]assistant.Message, 0, len(incoming))
	for _, m := range incoming {
		msg := assistant.Message{Role: assistant.Role(m.Role)}

		var parts []any
		if err := json.Unmarshal(m.Content, &parts); err != nil {
			// A bare string is treated as a single text part.
			var text string
			if json.Unmarshal(m.Content, &text) == nil {
				parts = []any{text}
			}
		}
		for _, part := range parts {
			if text, isString := part.(string); isString {
				msg.Parts = append(msg.Parts, assistant.ContentPart{Kind: "text", Text: text})
			}
		}
		messages = append(messages, msg)
	}
	return messages
}

func (s *Server) httpError(c echo.Context, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
}
