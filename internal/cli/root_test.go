package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentoven/deploychat/internal/cli"
	"github.com/agentoven/deploychat/pkg/contracts"
	"github.com/agentoven/deploychat/pkg/models"
)

type recordingChat struct {
	last  models.ChatRequest
	reply models.ChatReply
}

func (c *recordingChat) Handle(ctx context.Context, req models.ChatRequest) models.ChatReply {
	c.last = req
	return c.reply
}

func run(t *testing.T, opts cli.Options, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAsk_JSON(t *testing.T) {
	svc := &recordingChat{reply: models.ChatReply{Response: "ok", Suggestions: []string{"next"}}}
	opts := cli.Options{NewChat: func() (contracts.ChatService, error) { return svc, nil }}

	out, err := run(t, opts, "", "ask", "--json", "--workspace", "/tmp/ws", "deploy", "this")
	require.NoError(t, err)

	assert.Equal(t, "deploy this", svc.last.Prompt)
	assert.Equal(t, "/tmp/ws", svc.last.Context.WorkspaceURI)

	var reply models.ChatReply
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	assert.Equal(t, svc.reply, reply)
}

func TestAsk_Rendered(t *testing.T) {
	svc := &recordingChat{reply: models.ChatReply{Response: "all good", Suggestions: []string{"check status"}}}
	opts := cli.Options{NewChat: func() (contracts.ChatService, error) { return svc, nil }}

	out, err := run(t, opts, "", "ask", "--plain", "help")
	require.NoError(t, err)
	assert.Contains(t, out, "all good")
	assert.Contains(t, out, "check status")
}

func TestAsk_RequiresPrompt(t *testing.T) {
	_, err := run(t, cli.Options{}, "", "ask")
	assert.Error(t, err)
}

func TestDetailsAndConfig(t *testing.T) {
	pred := `{"status":"success","deployment_config":{"app_name":"shop","deployment":{"kind":"Deployment"}}}`

	out, err := run(t, cli.Options{}, pred, "details")
	require.NoError(t, err)
	assert.Contains(t, out, "shop · deployment details")

	dir := t.TempDir()
	in := filepath.Join(dir, "pred.json")
	require.NoError(t, os.WriteFile(in, []byte(pred), 0o644))
	dest := filepath.Join(dir, "manifests.yaml")

	_, err = run(t, cli.Options{}, "", "config", "--from", in, "--out", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: Deployment")

	_, err = run(t, cli.Options{}, `{"status":"error"}`, "config")
	assert.ErrorContains(t, err, "no deployment_config")
}

func TestVersion(t *testing.T) {
	out, err := run(t, cli.Options{Version: "1.0.0"}, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "deploychat version 1.0.0")
}
