// Package deployapi is the HTTP client for the remote deployment prediction
// endpoint. Each call is a single POST with no retry: if it fails, the
// caller decides what to do.
package deployapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/agentoven/deploychat/internal/config"
	"github.com/agentoven/deploychat/pkg/models"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Request defaults applied when a slot was not extracted from the prompt.
const (
	DefaultBranch         = "main"
	DefaultNamespace      = "default"
	DefaultDeploymentType = "auto"
	defaultModelName      = "mcp-deployment"

	actionGetStatus = "get_status"
	maxErrorBody    = 4 << 10
)

// ErrEmptyPredictions is returned when a 2xx response carries no predictions.
var ErrEmptyPredictions = errors.New("deployment API returned no predictions")

// TransportError is a non-2xx response from the prediction endpoint.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("deployment API request failed: %d %s", e.StatusCode, e.Status)
}

// Client talks to the prediction endpoint.
type Client struct {
	endpoint  string
	apiKey    string
	modelName string
	transport *http.Transport
	client    *http.Client
}

// New creates a client from explicit configuration.
func New(cfg config.ClientConfig) *Client {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = defaultModelName
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		modelName: modelName,
		transport: transport,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// CloseIdleConnections closes kept-alive connections to the endpoint.
func (c *Client) CloseIdleConnections() {
	c.transport.CloseIdleConnections()
}

// PredictURL returns the full prediction URL.
func (c *Client) PredictURL() string {
	return fmt.Sprintf("%s/v1/models/%s:predict", c.endpoint, c.modelName)
}

// AnalyzeAndDeploy analyzes a repository and optionally deploys it.
func (c *Client) AnalyzeAndDeploy(ctx context.Context, repositoryURL string, opts models.DeploymentOptions) (*models.Prediction, error) {
	instance := models.AnalyzeInstance{
		RepositoryURL:     repositoryURL,
		Branch:            orDefault(opts.Branch, DefaultBranch),
		Namespace:         orDefault(opts.Namespace, DefaultNamespace),
		DeploymentType:    orDefault(opts.DeploymentType, DefaultDeploymentType),
		DeployImmediately: opts.DeployImmediately,
	}

	var pred models.Prediction
	if err := c.predict(ctx, instance, &pred); err != nil {
		return nil, err
	}

	log.Debug().
		Str("repository", repositoryURL).
		Str("namespace", instance.Namespace).
		Bool("deploy", instance.DeployImmediately).
		Str("status", pred.Status).
		Msg("Prediction received")
	return &pred, nil
}

// GetDeploymentStatus returns the live state of a deployment.
func (c *Client) GetDeploymentStatus(ctx context.Context, namespace, appName string) (*models.StatusPrediction, error) {
	instance := models.StatusInstance{
		Action:    actionGetStatus,
		Namespace: namespace,
		AppName:   appName,
	}

	var pred models.StatusPrediction
	if err := c.predict(ctx, instance, &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}

// predict posts a single-instance batch and decodes predictions[0] into out.
func (c *Client) predict(ctx context.Context, instance interface{}, out interface{}) error {
	body, err := json.Marshal(models.PredictRequest{Instances: []interface{}{instance}})
	if err != nil {
		return fmt.Errorf("deployapi: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.PredictURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("deployapi: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("deployapi: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return &TransportError{
			StatusCode: httpResp.StatusCode,
			Status:     http.StatusText(httpResp.StatusCode),
			Body:       string(respBody),
		}
	}

	var envelope struct {
		Predictions []json.RawMessage `json:"predictions"`
		Error       string            `json:"error"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("deployapi: decode response: %w", err)
	}
	if len(envelope.Predictions) == 0 {
		if envelope.Error != "" {
			return fmt.Errorf("%w: %s", ErrEmptyPredictions, envelope.Error)
		}
		return ErrEmptyPredictions
	}
	if err := json.Unmarshal(envelope.Predictions[0], out); err != nil {
		return fmt.Errorf("deployapi: decode prediction: %w", err)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
