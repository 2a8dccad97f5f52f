package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/c360/ontoquery/enrich"
	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/metric"
	"github.com/c360/ontoquery/pkg/retry"
	"github.com/c360/ontoquery/schema"
)

// ClientConfig configures the chat-completion collaborator client.
type ClientConfig struct {
	// BaseURL points at any OpenAI-compatible endpoint. Empty uses the
	// SDK default.
	BaseURL string

	// Model is the chat model name. Required.
	Model string

	// APIKey authenticates the endpoint; local services accept any
	// value.
	APIKey string

	// Timeout for HTTP requests (default 60s).
	Timeout time.Duration

	// SchemaSnippet returns the committed schema rendered for prompt
	// context; nil omits the schema section.
	SchemaSnippet func() string

	// Retry defaults to retry.Collaborator().
	Retry retry.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional; nil disables retry counting.
	Metrics *metric.Metrics
}

// Client implements Translator, Refiner and SchemaProposer over an
// OpenAI-compatible chat-completion API.
type Client struct {
	api     *openai.Client
	model   string
	snippet func() string
	retry   retry.Config
	logger  *slog.Logger
	metrics *metric.Metrics
}

// NewClient creates a collaborator client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "llm", "NewClient", "model is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	apiCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Collaborator()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		snippet: cfg.SchemaSnippet,
		retry:   cfg.Retry,
		logger:  logger.With("component", "llm"),
		metrics: cfg.Metrics,
	}, nil
}

const translatePrompt = `You are a SPARQL query generator for a typed knowledge graph.
Convert the user's question into a SELECT query using the prefixes declared in the schema.
Respond with JSON: {"query": "<the SPARQL query>", "confidence": <0.0-1.0>}.`

// Translate asks the model for a query answering the question.
func (c *Client) Translate(ctx context.Context, text string) (Translation, error) {
	content, err := c.complete(ctx, "translate", c.withSchema(translatePrompt), text)
	if err != nil {
		return Translation{}, err
	}
	var out Translation
	if err := decodeJSON(content, &out); err != nil {
		return Translation{}, errors.WrapInvalid(err, "llm", "Translate", "parsing response failed")
	}
	return out, nil
}

const refinePrompt = `You are a SPARQL query repair assistant for a typed knowledge graph.
A query produced no results. Using the schema, the failed query and the entities it mentioned,
produce an improved query answering the original question.
Respond with JSON: {"query": "<improved query>", "confidence": <0.0-1.0>, "explanation": "<one sentence>"}.`

// Refine asks the model for an improved query conditioned on the gap.
func (c *Client) Refine(ctx context.Context, text, failedQuery string, gap enrich.Gap) (Refinement, error) {
	user := fmt.Sprintf("Question: %s\n\nFailed query:\n%s\n\nMentioned entities: %s",
		text, failedQuery, strings.Join(gap.MentionedEntities, ", "))
	content, err := c.complete(ctx, "refine", c.withSchema(refinePrompt), user)
	if err != nil {
		return Refinement{}, err
	}
	var out Refinement
	if err := decodeJSON(content, &out); err != nil {
		return Refinement{}, errors.WrapInvalid(err, "llm", "Refine", "parsing response failed")
	}
	return out, nil
}

const proposePrompt = `You are an ontology engineer for a typed knowledge graph.
Decide whether new classes or properties are needed to model the concepts in the user's question.
Respond with JSON: {"classes": [{"name", "parent", "label"}], "object_properties": [{"name", "domain", "range", "label"}], "datatype_properties": [{"name", "domain", "range", "label"}]}.
Return empty arrays when the existing schema already covers the question.`

// ProposeSchema asks the model for schema extensions covering the
// question's concepts.
func (c *Client) ProposeSchema(ctx context.Context, text string) (schema.Proposal, error) {
	content, err := c.complete(ctx, "propose_schema", c.withSchema(proposePrompt), text)
	if err != nil {
		return schema.Proposal{}, err
	}
	var out schema.Proposal
	if err := decodeJSON(content, &out); err != nil {
		return schema.Proposal{}, errors.WrapInvalid(err, "llm", "ProposeSchema", "parsing response failed")
	}
	return out, nil
}

func (c *Client) withSchema(prompt string) string {
	if c.snippet == nil {
		return prompt
	}
	return prompt + "\n\nSCHEMA:\n" + c.snippet()
}

// complete makes one retried chat-completion call and returns the
// response content.
func (c *Client) complete(ctx context.Context, operation, system, user string) (string, error) {
	attempts := 0
	content, err := retry.DoWithResult(ctx, c.retry, func() (string, error) {
		attempts++
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return "", classifyAPIError(err, operation)
		}
		if len(resp.Choices) == 0 {
			return "", retry.NonRetryable(errors.WrapInvalid(errors.ErrCollaborator,
				"llm", operation, "response has no choices"))
		}
		return resp.Choices[0].Message.Content, nil
	})

	if c.metrics != nil && attempts > 1 {
		for i := 1; i < attempts; i++ {
			c.metrics.RecordCollaboratorRetry(operation)
		}
	}
	if err != nil {
		c.logger.Error("collaborator call failed", "operation", operation, "error", err)
		return "", err
	}
	return content, nil
}

// classifyAPIError maps API failures onto the retry policy: rate
// limits and server errors are transient, everything else gives up
// immediately.
func classifyAPIError(err error, operation string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return errors.WrapTransient(errors.ErrRateLimited, "llm", operation, apiErr.Message)
		case apiErr.HTTPStatusCode >= 500:
			return errors.WrapTransient(errors.ErrCollaborator, "llm", operation, apiErr.Message)
		default:
			return retry.NonRetryable(
				errors.WrapInvalid(errors.ErrCollaborator, "llm", operation, apiErr.Message))
		}
	}
	// Network-level failure.
	return errors.WrapTransient(err, "llm", operation, "request failed")
}

// decodeJSON parses a model response, tolerating a markdown code
// fence around the JSON body.
func decodeJSON(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return json.Unmarshal([]byte(strings.TrimSpace(trimmed)), v)
}
