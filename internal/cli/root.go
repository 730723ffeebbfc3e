// Package cli implements the deploychat command-line host.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentoven/deploychat/internal/chat"
	"github.com/agentoven/deploychat/internal/config"
	"github.com/agentoven/deploychat/internal/deployapi"
	"github.com/agentoven/deploychat/internal/intent"
	"github.com/agentoven/deploychat/internal/panel"
	"github.com/agentoven/deploychat/internal/terminal"
	"github.com/agentoven/deploychat/internal/workspace"
	"github.com/agentoven/deploychat/pkg/contracts"
	"github.com/agentoven/deploychat/pkg/models"
)

// Options holds CLI-level dependencies.
type Options struct {
	Version string
	// NewChat builds the chat service on demand so commands that never
	// reach the deployment API work without an endpoint configured.
	NewChat func() (contracts.ChatService, error)
}

// DefaultChat builds a chat service from environment configuration.
func DefaultChat() (contracts.ChatService, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return chat.NewHandler(deployapi.New(cfg.Model), workspace.NewGitResolver(), intent.New(nil)), nil
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.NewChat == nil {
		opts.NewChat = DefaultChat
	}

	root := &cobra.Command{
		Use:           "deploychat",
		Short:         "Deploy and inspect applications from natural language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAskCommand(opts))
	root.AddCommand(newDetailsCommand())
	root.AddCommand(newConfigCommand())
	root.AddCommand(newVersionCommand(opts.Version))
	return root
}

func newAskCommand(opts Options) *cobra.Command {
	var (
		dir     string
		plain   bool
		asJSON  bool
		width   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a prompt to the dispatcher",
		Example: `  deploychat ask deploy https://github.com/acme/shop to staging
  deploychat ask what is the status of shop in staging`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.NewChat()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			req := models.ChatRequest{Prompt: strings.Join(args, " ")}
			if dir != "" {
				req.Context.WorkspaceURI = dir
			}
			reply := svc.Handle(ctx, req)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(reply)
			}
			r, err := terminal.NewRenderer(width, plain)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, r.Render(reply))
			return err
		},
	}

	cmd.Flags().StringVarP(&dir, "workspace", "w", "", "use this directory's git remote as the repository")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable terminal styling")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw reply as JSON")
	cmd.Flags().IntVar(&width, "width", 100, "wrap width for rendered output")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline for the request (0 uses the client timeout)")
	return cmd
}

func newDetailsCommand() *cobra.Command {
	var from, out, baseURL string

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Render a prediction as an HTML details page",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pred models.Prediction
			if err := readJSON(cmd.InOrStdin(), from, &pred); err != nil {
				return err
			}
			page, err := panel.New(baseURL).RenderDetails(&pred)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, page)
		},
	}
	cmd.Flags().StringVar(&from, "from", "-", "prediction JSON file (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "dispatcher URL linked from the page")
	return cmd
}

func newConfigCommand() *cobra.Command {
	var from, out string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the manifests of a prediction as multi-document YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pred models.Prediction
			if err := readJSON(cmd.InOrStdin(), from, &pred); err != nil {
				return err
			}
			if pred.DeploymentConfig == nil {
				return fmt.Errorf("prediction has no deployment_config")
			}
			manifests, err := panel.ConfigYAML(pred.DeploymentConfig)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, manifests)
		},
	}
	cmd.Flags().StringVar(&from, "from", "-", "prediction JSON file (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "deploychat version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}

// ── Helpers ─────────────────────────────────────────────────

func readJSON(stdin io.Reader, path string, v interface{}) error {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", displayName(path), err)
	}
	return nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
