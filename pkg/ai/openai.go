package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "noobie",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of AI model requests",
	}, []string{"operation", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noobie",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed AI model requests",
	}, []string{"operation", "model"})
)

const reviewSystemPrompt = `You are a code reviewer analyzing git diff changes against company coding guidelines.

Analyze the git diff and categorize EACH CHANGED LINE into three categories:
1. EXCELLENT: Lines that perfectly follow the guidelines
2. OK: Lines that are acceptable but could be improved
3. BAD: Lines that violate the guidelines

IMPORTANT: Only analyze the lines that were ADDED (starting with +) in the diff, ignore removed lines (starting with -).

Return your analysis in this EXACT format:

EXCELLENT_LINES: [number]
OK_LINES: [number]
BAD_LINES: [number]

FEEDBACK:
[Provide specific feedback about what was good and what needs improvement]

ISSUES:
[List specific guideline violations if any]

Be precise with line counts. The sum of EXCELLENT_LINES + OK_LINES + BAD_LINES should equal the total number of added lines.`

const trainingSystemPrompt = `You are a coding instructor creating practice tasks for interns. Based on the company's coding guidelines, generate 3 progressive training tasks that help interns learn and practice these rules.

Each task should:
1. Start simple and increase in difficulty
2. Focus on specific rules from the guidelines
3. Include clear requirements
4. Be realistic and practical

Format each task as:

TASK N: [Title]
Difficulty: [Easy|Medium|Hard]
Focus: [Which rules this practices]
Description: [Clear task description]
Requirements:
- [Requirement 1]
- [Requirement 2]
- [Requirement 3]`

// OpenAIConfig defines configuration options for the OpenAI-backed client.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIClient implements Classifier and TaskGenerator against the OpenAI
// chat completion API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	tracer := otel.Tracer("github.com/noobie-hq/noobie-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// ReviewDiff asks the model to classify every added line of the diff into
// quality tiers and returns the raw analysis text. The engine performs one
// bounded round trip; retries and timeouts belong to the transport layer.
func (c *OpenAIClient) ReviewDiff(parent context.Context, req ReviewRequest) (string, error) {
	userPrompt := buildReviewPrompt(req)
	return c.complete(parent, "review_diff", reviewSystemPrompt, userPrompt)
}

// GenerateTasks asks the model for three progressive training tasks based
// on the supplied guideline text.
func (c *OpenAIClient) GenerateTasks(parent context.Context, guidelines string) (string, error) {
	userPrompt := fmt.Sprintf("Company Coding Guidelines:\n\n%s\n\nGenerate 3 progressive training tasks based on these guidelines.", guidelines)
	return c.complete(parent, "generate_tasks", trainingSystemPrompt, userPrompt)
}

func (c *OpenAIClient) complete(parent context.Context, operation, systemPrompt, userPrompt string) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai."+operation, trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(operation, c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(operation, c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", classifyError(operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(operation, c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildReviewPrompt(req ReviewRequest) string {
	builder := strings.Builder{}
	builder.WriteString("Company Guidelines for ")
	builder.WriteString(req.Position)
	builder.WriteString(":\n")
	builder.WriteString(req.Guidelines)
	builder.WriteString("\n\nGit Diff to analyze:\n```diff\n")
	builder.WriteString(req.Diff)
	builder.WriteString("\n```\n\nAnalyze the code changes and provide your assessment.")
	return builder.String()
}

func classifyError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return fmt.Errorf("openai %s: %w", operation, ErrRateLimited)
		case 402:
			return fmt.Errorf("openai %s: %w", operation, ErrQuotaExhausted)
		}
	}

	return fmt.Errorf("openai %s: %w", operation, err)
}
