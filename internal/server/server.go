package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"

	"recipe-nutrition/internal/planner"
)

type Config struct {
	Name    string
	Version string
}

type toolHandler func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)

// RecipeToolServer answers tool calls read as newline-delimited JSON from a
// reader, writing one result per line.
type RecipeToolServer struct {
	service  *planner.Service
	config   *Config
	logger   *zap.Logger
	handlers map[string]toolHandler
}

func NewRecipeToolServer(svc *planner.Service, cfg *Config, logger *zap.Logger) (*RecipeToolServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &RecipeToolServer{
		service: svc,
		config:  cfg,
		logger:  logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

func (s *RecipeToolServer) Info() protocol.Implementation {
	return protocol.Implementation{
		Name:    s.config.Name,
		Version: s.config.Version,
	}
}

// Serve processes requests until the reader is exhausted or ctx is done.
// Once ctx is done Serve returns without waiting for the next line; a request
// already being handled is finished and its result written first.
func (s *RecipeToolServer) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines, readErr := readLines(ctx, r)
	enc := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var text string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read request: %w", err)
				}
				return ctx.Err()
			}
			text = next
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}

		var request protocol.CallToolRequest
		var result *protocol.CallToolResult
		if err := json.Unmarshal([]byte(line), &request); err != nil {
			s.logger.Warn("Invalid tool request", zap.Error(err))
			result = errorResult(fmt.Errorf("invalid JSON: %w", err))
		} else {
			result = s.HandleRequest(&request)
		}

		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
	}
}

// readLines feeds lines from r until EOF, a read error or ctx is done. The
// error channel receives exactly one value before lines is closed.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errCh <- nil
				return
			}
		}
		errCh <- scanner.Err()
	}()

	return lines, errCh
}

// HandleRequest routes a single tool call. Failures are returned as an error
// payload rather than a Go error.
func (s *RecipeToolServer) HandleRequest(request *protocol.CallToolRequest) *protocol.CallToolResult {
	handler, ok := s.handlers[request.Name]
	if !ok {
		return errorResult(fmt.Errorf("unknown tool: %s", request.Name))
	}

	result, err := handler(request)
	if err != nil {
		s.logger.Warn("Tool call failed", zap.String("tool", request.Name), zap.Error(err))
		return errorResult(err)
	}
	return result
}

func (s *RecipeToolServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return textResult(string(jsonBytes)), nil
}

func textResult(text string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

func errorResult(err error) *protocol.CallToolResult {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return textResult(string(payload))
}
