// Package slots extracts structured parameters from chat prompts.
//
// Every slot is optional: extraction never fails, it returns a partial
// record and leaves defaulting or clarification to the caller. Captures are
// single tokens ([\w-]+), so multi-word values are truncated to their first
// word.
package slots

import (
	"context"
	"regexp"
	"strings"

	"github.com/agentoven/deploychat/pkg/contracts"
	"github.com/agentoven/deploychat/pkg/models"
	"github.com/rs/zerolog/log"
)

// pattern is a compiled slot pattern with the capture groups it fills.
type pattern struct {
	re        *regexp.Regexp
	appGroup  int
	nsGroup   int
	valueSlot int
}

var (
	namespacePattern = pattern{re: regexp.MustCompile(`(?i)(in|to|namespace)\s+([\w-]+)`), valueSlot: 2}
	branchPattern    = pattern{re: regexp.MustCompile(`(?i)(branch|from)\s+([\w-]+)`), valueSlot: 2}

	// statusPatterns are tried in order; the first match wins.
	statusPatterns = []pattern{
		{re: regexp.MustCompile(`(?i)status of ([\w-]+) in ([\w-]+)`), appGroup: 1, nsGroup: 2},
		{re: regexp.MustCompile(`(?i)([\w-]+) in ([\w-]+) namespace`), appGroup: 1, nsGroup: 2},
		{re: regexp.MustCompile(`(?i)deployment ([\w-]+) ([\w-]+)`), appGroup: 1, nsGroup: 2},
	}

	repositoryURLPattern = regexp.MustCompile(`https://github\.com/[\w.-]+/[\w.-]+`)
)

func (p pattern) find(text string) (string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[p.valueSlot], true
}

// DeploymentOptions extracts namespace and branch from a deploy or analyze
// prompt. Unmatched fields stay empty.
func DeploymentOptions(prompt string) models.DeploymentOptions {
	var opts models.DeploymentOptions
	if ns, ok := namespacePattern.find(prompt); ok {
		opts.Namespace = ns
	}
	if branch, ok := branchPattern.find(prompt); ok {
		opts.Branch = branch
	}
	return opts
}

// StatusQuery extracts the app name and namespace from a status prompt.
// No match yields an empty query, which callers treat as "ask again".
func StatusQuery(prompt string) models.StatusQuery {
	for _, p := range statusPatterns {
		if m := p.re.FindStringSubmatch(prompt); m != nil {
			return models.StatusQuery{AppName: m[p.appGroup], Namespace: m[p.nsGroup]}
		}
	}
	return models.StatusQuery{}
}

// RepositoryURLFromText returns the first GitHub repository URL in text.
func RepositoryURLFromText(text string) string {
	u := repositoryURLPattern.FindString(text)
	return strings.TrimSuffix(u, ".git")
}

// RepositoryURL resolves the repository a prompt refers to. The workspace
// remote wins over a URL typed in the conversation; "" means neither
// source yielded one.
func RepositoryURL(ctx context.Context, ws contracts.WorkspaceResolver, chatCtx models.ChatContext, prompt string) string {
	if ws != nil && chatCtx.WorkspaceURI != "" {
		u, err := ws.RepositoryURL(ctx, chatCtx.WorkspaceURI)
		if err != nil {
			log.Warn().Err(err).Str("workspace", chatCtx.WorkspaceURI).Msg("Workspace repository lookup failed")
		} else if u != "" {
			return u
		}
	}

	text := chatCtx.Prompt
	if text == "" {
		text = prompt
	}
	if u := RepositoryURLFromText(text); u != "" {
		return u
	}
	if text != prompt {
		return RepositoryURLFromText(prompt)
	}
	return ""
}
