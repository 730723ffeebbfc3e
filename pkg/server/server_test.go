package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentoven/deploychat/internal/config"
	"github.com/agentoven/deploychat/pkg/server"
)

func TestNew_RejectsMissingEndpoint(t *testing.T) {
	_, err := server.New(context.Background(), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_MODEL_ENDPOINT")
}

func TestNew_ServesHealth(t *testing.T) {
	cfg := &config.Config{
		Port:    9090,
		Version: "0.0.1",
		Model:   config.ClientConfig{Endpoint: "http://model.local", ModelName: "mcp-deployment"},
	}
	srv, err := server.New(context.Background(), cfg)
	require.NoError(t, err)
	defer srv.ShutdownFunc(context.Background())

	assert.Equal(t, 9090, srv.Port)
	assert.NotNil(t, srv.Chat)
	assert.NotNil(t, srv.Panel)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
