// Package formatter projects prediction results into chat replies.
//
// Every function here is pure: it reads typed prediction fields and returns
// a ChatReply whose Response is never empty. Replies are markdown; the host
// decides how to render them.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentoven/deploychat/internal/deployapi"
	"github.com/agentoven/deploychat/pkg/models"
)

const (
	pendingURL  = "Pending..."
	unknownText = "unknown"
)

// Status labels derived from replica counts.
const (
	LabelRunning   = "Running"
	LabelStarting  = "Starting"
	LabelPartial   = "Partially running"
	LabelNotFound  = "Not found"
	genericAppType = "generic"
)

// ── Deployment ──────────────────────────────────────────────

// Deployment renders an analyze-and-deploy prediction.
func Deployment(pred *models.Prediction) models.ChatReply {
	if !pred.Succeeded() {
		return models.ChatReply{
			Response: "❌ **Deployment failed**\n\nError: " + serviceError(pred),
			Suggestions: []string{
				"Check the repository URL and access permissions",
				"Make sure the repository has a Dockerfile or a recognised project layout",
				"Analyze the repository first to spot missing pieces",
			},
		}
	}

	cfg := pred.DeploymentConfig
	if cfg == nil {
		cfg = &models.DeploymentConfig{}
	}
	appName := orText(cfg.AppName, unknownText)
	appType := cfg.ApplicationType
	if appType == "" && pred.Analysis != nil {
		appType = pred.Analysis.ApplicationType
	}
	namespace := orText(cfg.Namespace, deployapi.DefaultNamespace)
	url := pendingURL
	if cfg.DeploymentResult != nil && cfg.DeploymentResult.URL != "" {
		url = cfg.DeploymentResult.URL
	}

	var b strings.Builder
	b.WriteString("🚀 **Deployment started**\n\n")
	fmt.Fprintf(&b, "**Application:** %s\n", appName)
	fmt.Fprintf(&b, "**Type:** %s\n", orText(appType, unknownText))
	fmt.Fprintf(&b, "**Namespace:** %s\n", namespace)
	fmt.Fprintf(&b, "**URL:** %s\n", url)
	if r := cfg.DeploymentResult; r != nil && r.Status == "failed" && r.Error != "" {
		fmt.Fprintf(&b, "\n⚠️ The deployment step reported an error: %s\n", r.Error)
	}
	writeBullets(&b, "Recommendations", pred.Recommendations)

	return models.ChatReply{
		Response: b.String(),
		Suggestions: []string{
			fmt.Sprintf("status of %s in %s", appName, namespace),
			"analyze the repository again",
		},
		Actions: []models.Action{
			{Label: "View Details", Action: models.ActionShowDeploymentDetails, Data: pred},
			{Label: "Check Status", Action: models.ActionCheckDeploymentStatus, Data: models.StatusTarget{AppName: appName, Namespace: namespace}},
		},
	}
}

// ── Analysis ────────────────────────────────────────────────

// Analysis renders an analyze-only prediction. target feeds the
// "Deploy Now" action.
func Analysis(pred *models.Prediction, target models.DeployTarget) models.ChatReply {
	if !pred.Succeeded() {
		return models.ChatReply{Response: "❌ Analysis failed: " + serviceError(pred)}
	}

	a := pred.Analysis
	if a == nil {
		a = &models.Analysis{}
	}

	var b strings.Builder
	b.WriteString("📊 **Repository analysis**\n\n")
	fmt.Fprintf(&b, "**Repository:** %s\n", orText(a.Repository, target.RepositoryURL))
	fmt.Fprintf(&b, "**Type:** %s\n", orText(a.ApplicationType, unknownText))
	fmt.Fprintf(&b, "**Language:** %s\n", orText(a.Language, unknownText))
	fmt.Fprintf(&b, "**Size:** %s\n", FormatSize(a.Size))

	keyFiles := make([]string, 0, len(a.FileStructure.KeyFiles))
	for _, f := range a.FileStructure.KeyFiles {
		keyFiles = append(keyFiles, f.Name)
	}
	writeBullets(&b, "Key files", keyFiles)

	fmt.Fprintf(&b, "\n**Dependencies:** %d packages via %d package manager(s)",
		len(a.Dependencies.Dependencies), len(a.Dependencies.PackageManagers))
	if len(a.Dependencies.PackageManagers) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(a.Dependencies.PackageManagers, ", "))
	}
	b.WriteString("\n")

	if a.DockerAnalysis.HasDockerfile {
		fmt.Fprintf(&b, "**Dockerfile:** ✅ present (base image: %s)\n", orText(a.DockerAnalysis.BaseImage, unknownText))
	} else {
		b.WriteString("**Dockerfile:** ❌ not found, one will be generated\n")
	}

	if issues := ReadinessIssues(a); len(issues) == 0 {
		b.WriteString("\n✅ **Ready for deployment**\n")
	} else {
		fmt.Fprintf(&b, "\n⚠️ **Needs attention before deploying:** %s\n", strings.Join(issues, ", "))
	}

	writeBullets(&b, "Recommendations", pred.Recommendations)

	return models.ChatReply{
		Response: b.String(),
		Suggestions: []string{
			"deploy " + target.RepositoryURL,
			"deploy " + target.RepositoryURL + " to staging",
		},
		Actions: []models.Action{
			{Label: "Deploy Now", Action: models.ActionDeployRepository, Data: target},
			{Label: "Generate Config", Action: models.ActionGenerateConfig, Data: pred.DeploymentConfig},
		},
	}
}

// ReadinessIssues flags the conditions that block a smooth deployment.
// An empty result means the repository is ready.
func ReadinessIssues(a *models.Analysis) []string {
	var issues []string
	if !a.DockerAnalysis.HasDockerfile {
		issues = append(issues, "no Dockerfile")
	}
	if !a.Documentation.SetupInstructions {
		issues = append(issues, "no setup instructions in README")
	}
	if a.ApplicationType == genericAppType {
		issues = append(issues, "application type could not be detected")
	}
	return issues
}

// FormatSize renders a size reported in KB.
func FormatSize(kb int64) string {
	switch {
	case kb < 1024:
		return fmt.Sprintf("%d KB", kb)
	case kb < 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(kb)/1024)
	default:
		return fmt.Sprintf("%.1f GB", float64(kb)/1024/1024)
	}
}

// ── Status ──────────────────────────────────────────────────

// StatusLabel derives a human label from replica counts.
func StatusLabel(d *models.DeploymentState) string {
	switch {
	case d == nil:
		return LabelNotFound
	case d.Replicas > 0 && d.ReadyReplicas == d.Replicas:
		return LabelRunning
	case d.ReadyReplicas == 0:
		return LabelStarting
	default:
		return LabelPartial
	}
}

// Status renders the live state of a deployment.
func Status(q models.StatusQuery, st *models.StatusPrediction) models.ChatReply {
	if st == nil {
		st = &models.StatusPrediction{}
	}
	if st.Error != "" {
		return models.ChatReply{
			Response: fmt.Sprintf("❌ Could not get the status of %s in %s: %s", q.AppName, q.Namespace, st.Error),
			Suggestions: []string{
				"Check the application name and namespace",
				fmt.Sprintf("deploy %s to %s", q.AppName, q.Namespace),
			},
		}
	}

	label := StatusLabel(st.Deployment)

	var b strings.Builder
	fmt.Fprintf(&b, "📈 **Deployment status: %s**\n\n", q.AppName)
	fmt.Fprintf(&b, "**Namespace:** %s\n", q.Namespace)
	fmt.Fprintf(&b, "**Status:** %s\n", label)

	if st.Deployment == nil {
		b.WriteString("\nNo deployment with that name exists in this namespace.\n")
		return models.ChatReply{
			Response: b.String(),
			Suggestions: []string{
				"Check the application name and namespace",
				fmt.Sprintf("deploy %s to %s", q.AppName, q.Namespace),
			},
		}
	}

	fmt.Fprintf(&b, "**Replicas:** %d/%d ready\n", st.Deployment.ReadyReplicas, st.Deployment.Replicas)

	pods := make([]string, 0, len(st.Pods))
	for _, p := range st.Pods {
		ready := "not ready"
		if p.Ready {
			ready = "ready"
		}
		pods = append(pods, fmt.Sprintf("%s: %s, %s, %d restart(s)", p.Name, orText(p.Status, unknownText), ready, p.Restarts))
	}
	writeBullets(&b, "Pods", pods)

	services := make([]string, 0, len(st.Services))
	for _, s := range st.Services {
		line := fmt.Sprintf("%s (%s)", s.Name, orText(s.Type, "ClusterIP"))
		if len(s.Ports) > 0 {
			ports := make([]string, 0, len(s.Ports))
			for _, p := range s.Ports {
				ports = append(ports, fmt.Sprint(p))
			}
			line += " ports " + strings.Join(ports, ", ")
		}
		services = append(services, line)
	}
	writeBullets(&b, "Services", services)

	var routes []string
	for _, r := range st.Routes {
		if addr := r.Address(); addr != "" {
			routes = append(routes, addr)
		}
	}
	if len(routes) == 0 {
		b.WriteString("\nNo external routes configured.\n")
	} else {
		writeBullets(&b, "Routes", routes)
	}

	reply := models.ChatReply{
		Response: b.String(),
		Suggestions: []string{
			fmt.Sprintf("status of %s in %s", q.AppName, q.Namespace),
		},
	}
	if len(routes) > 0 {
		reply.Actions = []models.Action{
			{Label: "Open Application", Action: models.ActionOpenURL, Data: models.OpenURLTarget{URL: routes[0]}},
		}
	}
	return reply
}

// ── Errors and clarifications ───────────────────────────────

// Error renders a failure raised while talking to the deployment API.
func Error(err error) models.ChatReply {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	var te *deployapi.TransportError
	if errors.As(err, &te) {
		msg = fmt.Sprintf("the deployment service answered %d %s", te.StatusCode, te.Status)
	}
	return models.ChatReply{
		Response: "❌ **Error:** " + msg,
		Suggestions: []string{
			"Check the model endpoint configuration",
			"Check that your API key has the required permissions",
			"Try again with a simpler request",
		},
	}
}

// MissingRepository asks the user which repository they mean.
func MissingRepository(intent models.Intent) models.ChatReply {
	verb := "deploy"
	if intent == models.IntentAnalyze {
		verb = "analyze"
	}
	return models.ChatReply{
		Response: fmt.Sprintf("I need a GitHub repository to %s. Open a workspace with a GitHub remote or include the repository URL in your message.", verb),
		Suggestions: []string{
			verb + " https://github.com/owner/repo",
			verb + " https://github.com/owner/repo to staging",
		},
	}
}

// MissingStatusQuery asks for the app name and namespace. Every suggestion
// classifies as a status prompt and carries a complete query.
func MissingStatusQuery() models.ChatReply {
	return models.ChatReply{
		Response: "Which deployment do you mean? Tell me the application name and namespace, for example `status of my-app in production`.",
		Suggestions: []string{
			"status of my-app in production",
			"check my-app in staging namespace",
			"status of my-app in default",
		},
	}
}

// Help describes what the dispatcher can do.
func Help() models.ChatReply {
	return models.ChatReply{
		Response: "👋 I can help you ship repositories to the cluster.\n\n" +
			"- **Deploy:** `deploy https://github.com/owner/repo to staging from main branch`\n" +
			"- **Analyze:** `analyze https://github.com/owner/repo`\n" +
			"- **Status:** `status of my-app in staging`\n",
		Suggestions: []string{
			"analyze this repository",
			"deploy this repository",
			"status of my-app in default",
		},
	}
}

func writeBullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

func serviceError(pred *models.Prediction) string {
	if pred == nil {
		return "empty response from the deployment service"
	}
	if pred.Error != "" {
		return pred.Error
	}
	return fmt.Sprintf("service reported status %q", pred.Status)
}

func orText(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
