package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/middleware"
	"github.com/lk16/cco/internal/models"
)

const (
	clientTimeout = 5 * time.Second
)

// APIClient talks to the REST routes of the server.
type APIClient struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	// verbose is whether to log requests as curl commands, useful for debugging
	verbose bool

	http *http.Client
}

func NewAPIClient(cfg *config.ClientConfig, verbose bool) *APIClient {
	return &APIClient{
		config:  cfg,
		verbose: verbose,
		http:    &http.Client{Timeout: clientTimeout},
	}
}

func (c *APIClient) logRequestAsCurl(request *http.Request) {
	// Do not build string if we're not logging it
	if !c.verbose {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if request.Body != nil && request.Body != http.NoBody {
		body, err := io.ReadAll(request.Body)
		if err != nil {
			slog.Warn("Failed to read request body", "error", err)
		}

		if len(body) > 0 {
			builder.WriteString(" -d '")
			builder.WriteString(strings.ReplaceAll(strings.TrimSpace(string(body)), "'", "'\\''"))
			builder.WriteString("'")
		}

		// Restore the original body
		request.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	slog.Info("Request", "curl", builder.String())
}

func (c *APIClient) request(method string, path string, payload any, response any) error {
	body := io.Reader(http.NoBody)
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = buf
	}

	request, err := http.NewRequest(method, strings.TrimRight(c.config.ServerURL, "/")+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		request.Header.Set(middleware.TokenHeader, c.config.Token)
	}

	c.logRequestAsCurl(request)

	resp, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if c.verbose {
		slog.Info("Response", "status", resp.Status)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server returned %v: %s", resp.Status, errResp.Error)
		}
		return fmt.Errorf("server returned unexpected status %v", resp.Status)
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetMatches lists the matches of the server.
func (c *APIClient) GetMatches() (*models.MatchesResponse, error) {
	var matches models.MatchesResponse
	if err := c.request(http.MethodGet, "/api/matches", nil, &matches); err != nil {
		return nil, err
	}
	return &matches, nil
}

// GetLobby lists the matches of all servers sharing the lobby store. It needs a token.
func (c *APIClient) GetLobby() (*models.MatchesResponse, error) {
	var matches models.MatchesResponse
	if err := c.request(http.MethodGet, "/api/lobby", nil, &matches); err != nil {
		return nil, err
	}
	return &matches, nil
}

// CloseMatch ends a match on the server. It needs a token.
func (c *APIClient) CloseMatch(id string) error {
	return c.request(http.MethodDelete, "/api/matches/"+id, nil, nil)
}

// RenderBoard asks the server for the ascii art of a board. It needs a token.
func (c *APIClient) RenderBoard(req models.RenderRequest) ([]string, error) {
	var rendered models.RenderResponse
	if err := c.request(http.MethodPost, "/api/boards/render", req, &rendered); err != nil {
		return nil, err
	}
	return rendered.Lines, nil
}
