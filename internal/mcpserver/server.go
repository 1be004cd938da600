// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/validation"
)

// Implementation name reported to MCP clients.
const Name = "kanjigraph"

// Config throttles tool calls.
type Config struct {
	// Version is reported in the initialize handshake.
	Version string

	// RateLimit is the sustained calls per second. Zero or less disables
	// throttling.
	RateLimit float64

	// Burst is the number of calls allowed above RateLimit.
	// Default: 1
	Burst int
}

// Server registers the engine's queries as MCP tools.
type Server struct {
	engine  *recommend.Engine
	limiter *rate.Limiter
	mcp     *mcp.Server
	logger  zerolog.Logger
}

// New creates the server and registers every tool.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(engine *recommend.Engine, cfg Config, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "mcp").Logger()

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	impl := &mcp.Implementation{Name: Name, Version: version}
	s := &Server{
		engine:  engine,
		limiter: limiter,
		mcp:     mcp.NewServer(impl, nil),
		logger:  logger,
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying SDK server, for custom transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves over stdin/stdout until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().Msg("mcp server listening on stdio")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// call wraps a tool body with throttling, validation, metrics and logging.
func call[A any](s *Server, tool string, fn func(ctx context.Context, args *A) (any, error)) mcp.ToolHandlerFor[A, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args A) (*mcp.CallToolResult, any, error) {
		start := time.Now()

		if !s.limiter.Allow() {
			metrics.RecordMCPToolCall(tool, "rate_limited")
			s.logger.Warn().Str("tool", tool).Msg("mcp tool call throttled")
			return errorResult("rate limit exceeded, retry later"), nil, nil
		}

		if verr := validation.ValidateStruct(&args); verr != nil {
			metrics.RecordMCPToolCall(tool, "error")
			return errorResult(verr.Error()), nil, nil
		}

		out, err := fn(ctx, &args)
		if err != nil {
			metrics.RecordMCPToolCall(tool, "error")
			s.logger.Debug().Err(err).Str("tool", tool).Msg("mcp tool call failed")
			return errorResult(toolErrorMessage(err)), nil, nil
		}

		data, err := json.Marshal(out)
		if err != nil {
			metrics.RecordMCPToolCall(tool, "error")
			return nil, nil, fmt.Errorf("encode %s result: %w", tool, err)
		}
		metrics.RecordMCPToolCall(tool, "ok")
		s.logger.Debug().
			Str("tool", tool).
			Dur("duration", time.Since(start)).
			Msg("mcp tool call served")
		return textResult(string(data)), nil, nil
	}
}

func toolErrorMessage(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNoGraph):
		return "no kanji graph is loaded"
	case errors.Is(err, recommend.ErrKanjiNotFound):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "query timed out"
	default:
		return fmt.Sprintf("query failed: %v", err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
