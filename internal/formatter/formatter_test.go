package formatter_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentoven/deploychat/internal/deployapi"
	"github.com/agentoven/deploychat/internal/formatter"
	"github.com/agentoven/deploychat/internal/intent"
	"github.com/agentoven/deploychat/pkg/models"
)

func successfulDeployment() *models.Prediction {
	return &models.Prediction{
		Status: "success",
		Analysis: &models.Analysis{
			Repository:      "acme/shop",
			ApplicationType: "node_js",
		},
		DeploymentConfig: &models.DeploymentConfig{
			AppName:         "shop",
			Namespace:       "production",
			ApplicationType: "node_js",
			DeploymentResult: &models.DeploymentResult{
				Status: "deployed",
				URL:    "https://shop-production.apps.example.com",
			},
		},
		Recommendations: []string{"Consider adding a Dockerfile for consistent deployments"},
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		kb   int64
		want string
	}{
		{0, "0 KB"},
		{500, "500 KB"},
		{1023, "1023 KB"},
		{1024, "1.0 MB"},
		{2048, "2.0 MB"},
		{1536, "1.5 MB"},
		{2 * 1024 * 1024, "2.0 GB"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.kb), func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatSize(tt.kb))
		})
	}
}

func TestDeployment_Success(t *testing.T) {
	pred := successfulDeployment()
	reply := formatter.Deployment(pred)

	assert.Contains(t, reply.Response, "shop")
	assert.Contains(t, reply.Response, "production")
	assert.Contains(t, reply.Response, "https://shop-production.apps.example.com")
	assert.Contains(t, reply.Response, "node_js")
	assert.Contains(t, reply.Response, "• Consider adding a Dockerfile")

	require.Len(t, reply.Actions, 2)
	assert.Equal(t, models.ActionShowDeploymentDetails, reply.Actions[0].Action)
	assert.Same(t, pred, reply.Actions[0].Data)
	assert.Equal(t, models.ActionCheckDeploymentStatus, reply.Actions[1].Action)
	assert.Equal(t, models.StatusTarget{AppName: "shop", Namespace: "production"}, reply.Actions[1].Data)
}

func TestDeployment_PendingURL(t *testing.T) {
	pred := successfulDeployment()
	pred.DeploymentConfig.DeploymentResult = nil

	reply := formatter.Deployment(pred)
	assert.Contains(t, reply.Response, "**URL:** Pending...")
}

func TestDeployment_DeployStepFailed(t *testing.T) {
	pred := successfulDeployment()
	pred.DeploymentConfig.DeploymentResult = &models.DeploymentResult{Status: "failed", Error: "quota exceeded"}

	reply := formatter.Deployment(pred)
	assert.Contains(t, reply.Response, "quota exceeded")
	assert.Contains(t, reply.Response, "Pending...")
}

func TestDeployment_ServiceFailure(t *testing.T) {
	reply := formatter.Deployment(&models.Prediction{Status: "error", Error: "repository_url is required"})

	assert.Contains(t, reply.Response, "repository_url is required")
	assert.Len(t, reply.Suggestions, 3)
	assert.Empty(t, reply.Actions)
}

func TestDeployment_NilPrediction(t *testing.T) {
	reply := formatter.Deployment(nil)
	assert.NotEmpty(t, reply.Response)
}

func analyzedRepo() *models.Prediction {
	return &models.Prediction{
		Status: "success",
		Analysis: &models.Analysis{
			Repository:      "acme/shop",
			ApplicationType: "node_js",
			Language:        "JavaScript",
			Size:            2048,
			FileStructure: models.FileStructure{KeyFiles: []models.KeyFile{
				{Name: "package.json", Path: "package.json"},
				{Name: "Dockerfile", Path: "Dockerfile"},
			}},
			Dependencies: models.Dependencies{
				PackageManagers: []string{"npm"},
				Dependencies:    []string{"express", "pg", "zod"},
			},
			Documentation:  models.Documentation{SetupInstructions: true},
			DockerAnalysis: models.DockerAnalysis{HasDockerfile: true, BaseImage: "node:18-alpine"},
		},
		DeploymentConfig: &models.DeploymentConfig{AppName: "shop", Namespace: "default"},
	}
}

func TestAnalysis_Ready(t *testing.T) {
	target := models.DeployTarget{RepositoryURL: "https://github.com/acme/shop"}
	pred := analyzedRepo()
	reply := formatter.Analysis(pred, target)

	assert.Contains(t, reply.Response, "acme/shop")
	assert.Contains(t, reply.Response, "JavaScript")
	assert.Contains(t, reply.Response, "2.0 MB")
	assert.Contains(t, reply.Response, "• package.json")
	assert.Contains(t, reply.Response, "3 packages via 1 package manager(s) (npm)")
	assert.Contains(t, reply.Response, "node:18-alpine")
	assert.Contains(t, reply.Response, "Ready for deployment")
	assert.NotContains(t, reply.Response, "Needs attention")

	require.Len(t, reply.Actions, 2)
	assert.Equal(t, models.ActionDeployRepository, reply.Actions[0].Action)
	assert.Equal(t, target, reply.Actions[0].Data)
	assert.Equal(t, models.ActionGenerateConfig, reply.Actions[1].Action)
	assert.Same(t, pred.DeploymentConfig, reply.Actions[1].Data)
}

func TestAnalysis_NeedsAttention(t *testing.T) {
	pred := analyzedRepo()
	pred.Analysis.DockerAnalysis = models.DockerAnalysis{}
	pred.Analysis.Documentation.SetupInstructions = false
	pred.Analysis.ApplicationType = "generic"

	reply := formatter.Analysis(pred, models.DeployTarget{RepositoryURL: "https://github.com/acme/shop"})
	assert.Contains(t, reply.Response, "Needs attention before deploying:** no Dockerfile, no setup instructions in README, application type could not be detected")
	assert.NotContains(t, reply.Response, "Ready for deployment")
}

func TestReadinessIssues(t *testing.T) {
	a := analyzedRepo().Analysis
	assert.Empty(t, formatter.ReadinessIssues(a))

	a.DockerAnalysis.HasDockerfile = false
	assert.Equal(t, []string{"no Dockerfile"}, formatter.ReadinessIssues(a))
}

func TestAnalysis_Failure(t *testing.T) {
	reply := formatter.Analysis(&models.Prediction{Status: "error", Error: "Bad credentials"}, models.DeployTarget{})
	assert.Equal(t, "❌ Analysis failed: Bad credentials", reply.Response)
	assert.Empty(t, reply.Actions)
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name  string
		state *models.DeploymentState
		want  string
	}{
		{"starting", &models.DeploymentState{ReadyReplicas: 0, Replicas: 3}, "Starting"},
		{"running", &models.DeploymentState{ReadyReplicas: 3, Replicas: 3}, "Running"},
		{"partial", &models.DeploymentState{ReadyReplicas: 1, Replicas: 3}, "Partially running"},
		{"scaled to zero", &models.DeploymentState{}, "Starting"},
		{"missing", nil, "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.StatusLabel(tt.state))
		})
	}
}

func TestStatus_WithRoutes(t *testing.T) {
	q := models.StatusQuery{AppName: "api", Namespace: "staging"}
	reply := formatter.Status(q, &models.StatusPrediction{
		Deployment: &models.DeploymentState{Replicas: 2, ReadyReplicas: 1},
		Pods: []models.PodState{
			{Name: "api-1", Status: "Running", Ready: true},
			{Name: "api-2", Status: "CrashLoopBackOff", Restarts: 4},
		},
		Services: []models.ServiceState{{Name: "api", Type: "ClusterIP", Ports: []int{80}}},
		Routes:   []models.RouteState{{Host: "api-staging.apps.example.com"}},
	})

	assert.Contains(t, reply.Response, "**Status:** Partially running")
	assert.Contains(t, reply.Response, "1/2 ready")
	assert.Contains(t, reply.Response, "• api-1: Running, ready, 0 restart(s)")
	assert.Contains(t, reply.Response, "• api-2: CrashLoopBackOff, not ready, 4 restart(s)")
	assert.Contains(t, reply.Response, "• api (ClusterIP) ports 80")
	assert.Contains(t, reply.Response, "• https://api-staging.apps.example.com")

	require.Len(t, reply.Actions, 1)
	assert.Equal(t, models.ActionOpenURL, reply.Actions[0].Action)
	assert.Equal(t, models.OpenURLTarget{URL: "https://api-staging.apps.example.com"}, reply.Actions[0].Data)
}

func TestStatus_NoRoutes(t *testing.T) {
	reply := formatter.Status(models.StatusQuery{AppName: "api", Namespace: "staging"}, &models.StatusPrediction{
		Deployment: &models.DeploymentState{Replicas: 1, ReadyReplicas: 1},
	})
	assert.Contains(t, reply.Response, "**Status:** Running")
	assert.Contains(t, reply.Response, "No external routes configured.")
	assert.Empty(t, reply.Actions)
}

func TestStatus_NotFound(t *testing.T) {
	reply := formatter.Status(models.StatusQuery{AppName: "ghost", Namespace: "default"}, &models.StatusPrediction{})
	assert.Contains(t, reply.Response, "**Status:** Not found")
	assert.Empty(t, reply.Actions)
}

func TestStatus_ServiceError(t *testing.T) {
	reply := formatter.Status(models.StatusQuery{AppName: "api", Namespace: "x"}, &models.StatusPrediction{Error: "forbidden"})
	assert.Contains(t, reply.Response, "forbidden")
}

func TestError_TransportError(t *testing.T) {
	err := fmt.Errorf("analyze: %w", &deployapi.TransportError{StatusCode: 503, Status: "Service Unavailable"})
	reply := formatter.Error(err)

	assert.Contains(t, reply.Response, "503 Service Unavailable")
	assert.Len(t, reply.Suggestions, 3)
}

func TestError_Generic(t *testing.T) {
	assert.Contains(t, formatter.Error(errors.New("boom")).Response, "boom")
	assert.NotEmpty(t, formatter.Error(nil).Response)
}

func TestClarifications(t *testing.T) {
	assert.Contains(t, formatter.MissingRepository(models.IntentAnalyze).Response, "to analyze")
	assert.Contains(t, formatter.MissingRepository(models.IntentDeploy).Response, "to deploy")

	status := formatter.MissingStatusQuery()
	assert.NotEmpty(t, status.Response)
	assert.Contains(t, status.Suggestions, "status of my-app in production")

	help := formatter.Help()
	assert.NotEmpty(t, help.Response)
	assert.NotEmpty(t, help.Suggestions)
}

// Only suggestions that openly ask to deploy may classify as a deployment.
func TestSuggestions_NeverDeployByAccident(t *testing.T) {
	q := models.StatusQuery{AppName: "shop", Namespace: "prod"}
	replies := map[string]models.ChatReply{
		"deployment ok":     formatter.Deployment(successfulDeployment()),
		"deployment failed": formatter.Deployment(&models.Prediction{Status: "error", Error: "boom"}),
		"analysis":          formatter.Analysis(successfulDeployment(), models.DeployTarget{RepositoryURL: "https://github.com/acme/shop"}),
		"analysis failed":   formatter.Analysis(nil, models.DeployTarget{}),
		"status":            formatter.Status(q, &models.StatusPrediction{Deployment: &models.DeploymentState{Replicas: 1, ReadyReplicas: 1}}),
		"status not found":  formatter.Status(q, &models.StatusPrediction{}),
		"status error":      formatter.Status(q, &models.StatusPrediction{Error: "forbidden"}),
		"error":             formatter.Error(errors.New("boom")),
		"missing repo":      formatter.MissingRepository(models.IntentAnalyze),
		"missing status":    formatter.MissingStatusQuery(),
		"help":              formatter.Help(),
	}

	for name, reply := range replies {
		for _, s := range reply.Suggestions {
			if intent.Classify(s) == models.IntentDeploy {
				assert.True(t, strings.HasPrefix(strings.ToLower(s), "deploy "),
					"%s: suggestion %q would start a deployment", name, s)
			}
		}
	}
}
