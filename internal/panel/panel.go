// Package panel renders host-side presentation for chat results: the
// deployment details page, HTML versions of chat replies, and the YAML
// manifests offered by the "Generate Config" action.
//
// It consumes the same typed predictions the formatter does and holds no
// dispatch logic of its own.
package panel

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/agentoven/deploychat/internal/formatter"
	"github.com/agentoven/deploychat/pkg/models"
)

// Renderer builds panel HTML.
type Renderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	details   *template.Template
	reply     *template.Template
	baseURL   string
}

// New creates a renderer. baseURL prefixes links back to the dispatcher
// and may be empty.
func New(baseURL string) *Renderer {
	funcs := template.FuncMap{
		"formatSize": formatter.FormatSize,
	}
	return &Renderer{
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
		details:   template.Must(template.New("details").Funcs(funcs).Parse(detailsTemplate)),
		reply:     template.Must(template.New("reply").Funcs(funcs).Parse(replyTemplate)),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// ── Details ─────────────────────────────────────────────────

type detailsView struct {
	Title           string
	AppName         string
	Namespace       string
	ApplicationType string
	URL             string
	Analysis        *models.Analysis
	Readiness       []string
	Recommendations []string
	Manifests       string
	Dockerfile      string
	Workflow        string
	Error           string
	BaseURL         string
}

// RenderDetails renders the full details page for a prediction.
func (r *Renderer) RenderDetails(pred *models.Prediction) (string, error) {
	if pred == nil {
		return "", fmt.Errorf("panel: nil prediction")
	}

	view := detailsView{
		Title:           "Deployment details",
		Analysis:        pred.Analysis,
		Recommendations: pred.Recommendations,
		BaseURL:         r.baseURL,
	}
	if !pred.Succeeded() {
		view.Error = pred.Error
		if view.Error == "" {
			view.Error = fmt.Sprintf("service reported status %q", pred.Status)
		}
	}
	if pred.Analysis != nil {
		view.ApplicationType = pred.Analysis.ApplicationType
		view.Readiness = formatter.ReadinessIssues(pred.Analysis)
	}
	if cfg := pred.DeploymentConfig; cfg != nil {
		view.AppName = cfg.AppName
		view.Namespace = cfg.Namespace
		if cfg.ApplicationType != "" {
			view.ApplicationType = cfg.ApplicationType
		}
		if cfg.DeploymentResult != nil {
			view.URL = cfg.DeploymentResult.URL
		}
		view.Dockerfile = cfg.Dockerfile
		manifests, err := ConfigYAML(cfg)
		if err != nil {
			return "", err
		}
		view.Manifests = manifests
		if view.Workflow, err = WorkflowYAML(cfg); err != nil {
			return "", err
		}
	}
	if view.AppName != "" {
		view.Title = view.AppName + " · deployment details"
	}

	var buf bytes.Buffer
	if err := r.details.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("panel: render details: %w", err)
	}
	return buf.String(), nil
}

// ── Reply ───────────────────────────────────────────────────

type replyView struct {
	Body        template.HTML
	Suggestions []string
	Actions     []models.Action
}

// RenderReply renders a chat reply as an HTML fragment. The markdown body
// is converted and then sanitized, so service-supplied text cannot inject
// markup.
func (r *Renderer) RenderReply(reply models.ChatReply) (string, error) {
	body, err := r.MarkdownToHTML(reply.Response)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	view := replyView{Body: template.HTML(body), Suggestions: reply.Suggestions, Actions: reply.Actions}
	if err := r.reply.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("panel: render reply: %w", err)
	}
	return buf.String(), nil
}

// MarkdownToHTML converts markdown and sanitizes the result.
func (r *Renderer) MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("panel: convert markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

// ── Config ──────────────────────────────────────────────────

// ConfigYAML renders the deployment, service and route manifests as a
// multi-document YAML stream. Missing manifests are skipped.
func ConfigYAML(cfg *models.DeploymentConfig) (string, error) {
	if cfg == nil {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range []map[string]interface{}{cfg.Deployment, cfg.Service, cfg.Route} {
		if len(doc) == 0 {
			continue
		}
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("panel: encode manifest: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("panel: encode manifest: %w", err)
	}
	return buf.String(), nil
}

// WorkflowYAML renders the generated GitHub Actions workflow, if any.
func WorkflowYAML(cfg *models.DeploymentConfig) (string, error) {
	if cfg == nil || len(cfg.GitHubActions) == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(cfg.GitHubActions)
	if err != nil {
		return "", fmt.Errorf("panel: encode workflow: %w", err)
	}
	return string(out), nil
}
