// Package workspace inspects the host workspace for its GitHub remote.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultCommandTimeout = 5 * time.Second

var (
	sshRemote   = regexp.MustCompile(`^git@github\.com:([\w.-]+)/([\w.-]+?)(?:\.git)?/?$`)
	httpsRemote = regexp.MustCompile(`^(?:https?|ssh|git)://(?:[^@/]+@)?github\.com/([\w.-]+)/([\w.-]+?)(?:\.git)?/?$`)
)

// GitResolver reads the origin remote of a local git checkout.
type GitResolver struct {
	// Remote is the remote name to read. Defaults to "origin".
	Remote  string
	Timeout time.Duration
}

// NewGitResolver creates a resolver for the origin remote.
func NewGitResolver() *GitResolver {
	return &GitResolver{Remote: "origin", Timeout: defaultCommandTimeout}
}

// RepositoryURL returns the normalized https://github.com/OWNER/REPO URL of
// the workspace, or "" when the directory is not a GitHub checkout.
func (g *GitResolver) RepositoryURL(ctx context.Context, workspaceURI string) (string, error) {
	dir, err := LocalPath(workspaceURI)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return "", nil
	}

	remote := g.Remote
	if remote == "" {
		remote = "origin"
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, "git", "config", "--get", "remote."+remote+".url")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// git exits 1 when the key is unset.
			return "", nil
		}
		return "", fmt.Errorf("read %s remote: %w", remote, err)
	}
	return NormalizeRemote(strings.TrimSpace(string(out))), nil
}

// LocalPath turns a file:// URI or plain path into a filesystem path.
func LocalPath(workspaceURI string) (string, error) {
	if !strings.Contains(workspaceURI, "://") {
		return workspaceURI, nil
	}
	u, err := url.Parse(workspaceURI)
	if err != nil {
		return "", fmt.Errorf("parse workspace uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported workspace scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

// NormalizeRemote rewrites GitHub remotes to https://github.com/OWNER/REPO.
// Non-GitHub remotes yield "".
func NormalizeRemote(remote string) string {
	for _, re := range []*regexp.Regexp{sshRemote, httpsRemote} {
		if m := re.FindStringSubmatch(remote); m != nil {
			return "https://github.com/" + m[1] + "/" + m[2]
		}
	}
	return ""
}
