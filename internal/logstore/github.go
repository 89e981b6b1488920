package logstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"taproom/internal/platform/config"
)

// GitHub stores the backing file through the GitHub contents API. Reads fetch
// the file's base64 content plus its blob SHA; writes PUT the full new content
// conditioned on that SHA.
type GitHub struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	path       string
	branch     string
	token      string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewGitHub builds a GitHub-backed store from configuration.
func NewGitHub(cfg config.GitHubOptions, logger *slog.Logger) *GitHub {
	return &GitHub{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		path:       cfg.FilePath,
		branch:     cfg.Branch,
		token:      cfg.Token,
		logger:     logger,
		tracer:     otel.Tracer("taproom/logstore"),
	}
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type updateResponse struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// Read fetches the backing file. A 404 is the first-write case and yields the
// default header content with no version token.
func (g *GitHub) Read(ctx context.Context) (Snapshot, error) {
	ctx, span := g.tracer.Start(ctx, "logstore.github.read",
		trace.WithAttributes(attribute.String("repo", g.owner+"/"+g.repo)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.contentsURL()+"?ref="+url.QueryEscape(g.branch), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build contents request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, fmt.Errorf("fetch contents: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		g.logger.DebugContext(ctx, "backing file missing, serving default header")
		return Snapshot{Content: Header}, nil
	default:
		span.SetStatus(codes.Error, resp.Status)
		return Snapshot{}, fmt.Errorf("fetch contents: unexpected status %s", resp.Status)
	}

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("decode contents response: %w", err)
	}

	// The API wraps base64 payloads at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode file content: %w", err)
	}

	return Snapshot{Content: string(raw), SHA: body.SHA}, nil
}

// Write replaces the backing file, conditioned on sha. A 409 from the API
// means another writer got there first and maps to ErrConflict.
func (g *GitHub) Write(ctx context.Context, content, sha, message string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "logstore.github.write",
		trace.WithAttributes(attribute.Bool("create", sha == "")))
	defer span.End()

	payload, err := json.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		Branch:  g.branch,
		SHA:     sha,
	})
	if err != nil {
		return "", fmt.Errorf("encode update request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build update request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("update contents: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		span.SetStatus(codes.Error, "version conflict")
		return "", ErrConflict
	default:
		// Drain for connection reuse; the body is not user-safe to surface.
		_, _ = io.Copy(io.Discard, resp.Body)
		span.SetStatus(codes.Error, resp.Status)
		return "", fmt.Errorf("update contents: unexpected status %s", resp.Status)
	}

	var body updateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode update response: %w", err)
	}
	return body.Commit.SHA, nil
}

func (g *GitHub) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, g.path)
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}
