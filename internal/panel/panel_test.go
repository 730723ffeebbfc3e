package panel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agentoven/deploychat/internal/formatter"
	"github.com/agentoven/deploychat/internal/panel"
	"github.com/agentoven/deploychat/pkg/models"
)

func sampleConfig() *models.DeploymentConfig {
	return &models.DeploymentConfig{
		AppName:         "shop",
		Namespace:       "prod",
		ApplicationType: "node_js",
		Deployment: map[string]interface{}{
			"apiVersion": "apps/v1",
			"kind":       "Deployment",
			"metadata":   map[string]interface{}{"name": "shop", "namespace": "prod"},
		},
		Service: map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "Service",
			"metadata":   map[string]interface{}{"name": "shop"},
		},
		Dockerfile:    "FROM node:18-alpine\nUSER 1001",
		GitHubActions: map[string]interface{}{"name": "Deploy shop"},
		DeploymentResult: &models.DeploymentResult{
			Status: "deployed",
			URL:    "https://shop-prod.apps.example.com",
		},
	}
}

func TestConfigYAML_MultiDocument(t *testing.T) {
	out, err := panel.ConfigYAML(sampleConfig())
	require.NoError(t, err)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var kinds []string
	for {
		var doc map[string]interface{}
		if err := dec.Decode(&doc); err != nil {
			break
		}
		kinds = append(kinds, doc["kind"].(string))
	}
	assert.Equal(t, []string{"Deployment", "Service"}, kinds, "empty route is skipped")
}

func TestConfigYAML_Nil(t *testing.T) {
	out, err := panel.ConfigYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderDetails(t *testing.T) {
	r := panel.New("http://localhost:8080/")
	html, err := r.RenderDetails(&models.Prediction{
		Status: "success",
		Analysis: &models.Analysis{
			Repository:      "acme/shop",
			ApplicationType: "node_js",
			Size:            2048,
			FileStructure:   models.FileStructure{KeyFiles: []models.KeyFile{{Name: "package.json", Path: "package.json"}}},
		},
		DeploymentConfig: sampleConfig(),
		Recommendations:  []string{"Add <b>setup</b> instructions"},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "<title>shop · deployment details</title>")
	assert.Contains(t, html, "https://shop-prod.apps.example.com")
	assert.Contains(t, html, "2.0 MB")
	assert.Contains(t, html, "kind: Deployment")
	assert.Contains(t, html, "FROM node:18-alpine")
	assert.Contains(t, html, "name: Deploy shop")
	assert.Contains(t, html, "Add &lt;b&gt;setup&lt;/b&gt; instructions", "service text is escaped")
	assert.Contains(t, html, `href="http://localhost:8080/health"`)
	assert.Contains(t, html, "no Dockerfile", "readiness issues are listed")
}

func TestRenderDetails_Failure(t *testing.T) {
	html, err := panel.New("").RenderDetails(&models.Prediction{Status: "error", Error: "Bad credentials"})
	require.NoError(t, err)
	assert.Contains(t, html, "Deployment failed: Bad credentials")

	_, err = panel.New("").RenderDetails(nil)
	assert.Error(t, err)
}

func TestRenderReply(t *testing.T) {
	r := panel.New("")
	reply := formatter.Help()
	reply.Response += "\n<script>alert(1)</script>"
	reply.Actions = []models.Action{{Label: "Open", Action: models.ActionOpenURL}}

	html, err := r.RenderReply(reply)
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Deploy:</strong>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `data-action="openUrl"`)
	assert.Contains(t, html, "<li>analyze this repository</li>")
}
