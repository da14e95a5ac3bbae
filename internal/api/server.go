// Package api is the HTTP transport layer: route registration, request
// parsing and upload handling. All budget logic lives below it.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/extractor"
	"github.com/presupuestosam/internal/report"
)

// Server represents the API server
type Server struct {
	echo         *echo.Echo
	port         int
	orchestrator *assistant.Orchestrator
	extractor    *extractor.Extractor
	reports      *report.Service
}

// NewServer creates a new API server
func NewServer(port int, orchestrator *assistant.Orchestrator, ext *extractor.Extractor, reports *report.Service) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:         e,
		port:         port,
		orchestrator: orchestrator,
		extractor:    ext,
		reports:      reports,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// Assistant conversation endpoints
	event := s.echo.Group("/assistant-event")
	event.POST("/create-thread-event", s.createThread)
	event.POST("/user-question-event", s.userQuestion)
	event.POST("/text-to-json-event", s.textToJSON)

	// Report endpoints
	reports := s.echo.Group("/reports")
	reports.POST("/bill", s.billReport)
	reports.POST("/bill-event", s.billEventReport)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
