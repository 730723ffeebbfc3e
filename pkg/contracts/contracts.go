// Package contracts defines the service interfaces for the deploychat dispatcher.
//
// The chat handler depends only on these interfaces, so the HTTP client and
// the git-backed workspace resolver can be swapped for fakes in tests or for
// another host's implementation in the wiring code (main.go).
package contracts

import (
	"context"

	"github.com/agentoven/deploychat/pkg/models"
)

// ── Deployment API ──────────────────────────────────────────

// DeploymentAPI issues prediction requests against the remote endpoint
// and returns the first prediction.
// Implementation: internal/deployapi.Client
type DeploymentAPI interface {
	// AnalyzeAndDeploy analyzes a repository and, when opts.DeployImmediately
	// is set, deploys it.
	AnalyzeAndDeploy(ctx context.Context, repositoryURL string, opts models.DeploymentOptions) (*models.Prediction, error)

	// GetDeploymentStatus returns the live state of a deployment.
	GetDeploymentStatus(ctx context.Context, namespace, appName string) (*models.StatusPrediction, error)
}

// ── Workspace Resolver ──────────────────────────────────────

// WorkspaceResolver derives a repository URL from the host workspace.
// Implementation: internal/workspace.GitResolver
type WorkspaceResolver interface {
	// RepositoryURL returns "" with a nil error when the workspace has no
	// usable remote.
	RepositoryURL(ctx context.Context, workspaceURI string) (string, error)
}

// ── Chat ────────────────────────────────────────────────────

// ChatService runs one chat request cycle. It never fails: errors are
// folded into the returned reply.
// Implementation: internal/chat.Handler
type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) models.ChatReply
}
