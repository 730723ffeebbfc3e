// Package chat orchestrates one chat request cycle: classify the prompt,
// extract slots, call the deployment API, and format the reply.
//
// Handler.Handle is the single error boundary. It always returns a
// well-formed ChatReply; API failures and formatter panics become error
// replies instead of escaping to the host.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentoven/deploychat/internal/formatter"
	"github.com/agentoven/deploychat/internal/intent"
	"github.com/agentoven/deploychat/internal/slots"
	"github.com/agentoven/deploychat/pkg/contracts"
	"github.com/agentoven/deploychat/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("deploychat/chat")

// Outcomes recorded per request cycle.
const (
	outcomeReply   = "reply"
	outcomeClarify = "clarify"
	outcomeError   = "error"
)

// Handler routes chat prompts to the deployment API.
type Handler struct {
	api        contracts.DeploymentAPI
	workspace  contracts.WorkspaceResolver
	classifier *intent.Classifier
}

// NewHandler creates a chat handler. workspace may be nil when the host
// has no workspace to inspect.
func NewHandler(api contracts.DeploymentAPI, workspace contracts.WorkspaceResolver, classifier *intent.Classifier) *Handler {
	if classifier == nil {
		classifier = intent.New(nil)
	}
	return &Handler{
		api:        api,
		workspace:  workspace,
		classifier: classifier,
	}
}

// Handle runs one request cycle.
func (h *Handler) Handle(ctx context.Context, req models.ChatRequest) (reply models.ChatReply) {
	cycleID := uuid.New().String()
	start := time.Now()
	in := h.classifier.Classify(req.Prompt)

	ctx, span := tracer.Start(ctx, "chat.handle",
		trace.WithAttributes(
			attribute.String("deploychat.cycle_id", cycleID),
			attribute.String("deploychat.intent", string(in)),
		),
	)
	defer span.End()

	logger := cycleLogger(ctx, cycleID, in)

	outcome := outcomeReply
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("Chat handler panicked")
			span.SetStatus(codes.Error, "panic")
			reply = formatter.Error(fmt.Errorf("internal error while preparing the reply"))
			outcome = outcomeError
		}
		if strings.TrimSpace(reply.Response) == "" {
			reply = formatter.Help()
		}
		span.SetAttributes(attribute.String("deploychat.outcome", outcome))
		logger.Info().
			Str("outcome", outcome).
			Dur("duration", time.Since(start)).
			Msg("Chat request handled")
	}()

	var err error
	switch in {
	case models.IntentDeploy, models.IntentAnalyze:
		reply, outcome, err = h.handleRepository(ctx, in, req)
	case models.IntentStatus:
		reply, outcome, err = h.handleStatus(ctx, req)
	default:
		reply = formatter.Help()
	}

	if err != nil {
		logger.Warn().Err(err).Msg("Deployment API call failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return formatter.Error(err)
	}
	return reply
}

// cycleLogger tags the request-scoped logger with the cycle id and intent,
// so the HTTP access line carries them too. Without one in ctx (CLI, tests)
// it derives a child of the global logger.
func cycleLogger(ctx context.Context, cycleID string, in models.Intent) *zerolog.Logger {
	tag := func(c zerolog.Context) zerolog.Context {
		return c.Str("cycle", cycleID).Str("intent", string(in))
	}
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		l.UpdateContext(tag)
		return l
	}
	l := tag(log.With()).Logger()
	return &l
}

func (h *Handler) handleRepository(ctx context.Context, in models.Intent, req models.ChatRequest) (models.ChatReply, string, error) {
	repoURL := slots.RepositoryURL(ctx, h.workspace, req.Context, req.Prompt)
	if repoURL == "" {
		return formatter.MissingRepository(in), outcomeClarify, nil
	}

	opts := slots.DeploymentOptions(req.Prompt)
	opts.DeployImmediately = in == models.IntentDeploy

	pred, err := h.api.AnalyzeAndDeploy(ctx, repoURL, opts)
	if err != nil {
		return models.ChatReply{}, outcomeError, fmt.Errorf("%s %s: %w", in, repoURL, err)
	}

	if in == models.IntentDeploy {
		return formatter.Deployment(pred), outcomeReply, nil
	}
	return formatter.Analysis(pred, models.DeployTarget{
		RepositoryURL: repoURL,
		Branch:        opts.Branch,
		Namespace:     opts.Namespace,
	}), outcomeReply, nil
}

func (h *Handler) handleStatus(ctx context.Context, req models.ChatRequest) (models.ChatReply, string, error) {
	q := slots.StatusQuery(req.Prompt)
	if !q.Complete() {
		return formatter.MissingStatusQuery(), outcomeClarify, nil
	}

	st, err := h.api.GetDeploymentStatus(ctx, q.Namespace, q.AppName)
	if err != nil {
		return models.ChatReply{}, outcomeError, fmt.Errorf("status of %s in %s: %w", q.AppName, q.Namespace, err)
	}
	return formatter.Status(q, st), outcomeReply, nil
}
