package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/budget"
	"github.com/presupuestosam/internal/extractor"
	"github.com/presupuestosam/internal/report"
)

func (s *Server) billReport(c echo.Context) error {
	var data budget.MaterialsCollection
	if err := c.Bind(&data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	handle, err := s.reports.BillReport(data)
	if err != nil {
		return s.httpError(c, err)
	}
	return writePDF(c, handle)
}

func (s *Server) billEventReport(c echo.Context) error {
	var data budget.Collection
	if err := c.Bind(&data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	handle, err := s.reports.BillEventReport(data)
	if err != nil {
		return s.httpError(c, err)
	}
	return writePDF(c, handle)
}

func writePDF(c echo.Context, handle report.Handle) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().WriteHeader(http.StatusOK)
	_, err := handle.WriteTo(c.Response())
	return err
}

// statusFor maps the error taxonomy onto transport status codes.
func statusFor(err error) int {
	var (
		providerErr  *assistant.ProviderError
		runFailed    *assistant.RunFailedError
		runTimeout   *assistant.RunTimeoutError
		cancelled    *assistant.OperationCancelledError
		parseErr     *extractor.ExtractionParseError
		mismatchErr  *extractor.SchemaMismatchError
		malformedErr *report.MalformedBudgetError
	)
	switch {
	case errors.Is(err, assistant.ErrEmptyAttachment):
		return http.StatusBadRequest
	case errors.As(err, &malformedErr):
		return http.StatusBadRequest
	case errors.As(err, &cancelled):
		return http.StatusRequestTimeout
	case errors.As(err, &runTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &runFailed), errors.As(err, &providerErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr), errors.As(err, &mismatchErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
