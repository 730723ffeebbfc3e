// Package intent classifies chat prompts into deploy, analyze, status or help.
//
// Classification is an ordered rule table evaluated first-match-wins with
// case-insensitive substring tests. Order is the tie-break: a prompt that
// mentions both deploying and status resolves to deploy.
package intent

import (
	"strings"

	"github.com/agentoven/deploychat/pkg/models"
)

// Rule maps a keyword set to an intent.
type Rule struct {
	Intent   models.Intent
	Keywords []string
}

// DefaultRules is the built-in rule table, in priority order.
//
// Matching is by substring, so deploy and analyze keywords must not be
// common fragments of application names (ship, release, review, scan):
// a status prompt naming such an app would otherwise start a deployment.
var DefaultRules = []Rule{
	{models.IntentDeploy, []string{"deploy", "ship it", "ship this", "roll out"}},
	{models.IntentAnalyze, []string{"analyze", "analyse", "analysis", "inspect", "examine", "evaluate", "assess"}},
	{models.IntentStatus, []string{"status", "health", "running", "pods", "replicas", "check", "progress", "state of"}},
}

// Classifier evaluates a rule table against prompts.
type Classifier struct {
	rules []Rule
}

// New creates a classifier over rules. Keywords are lower-cased once here.
// A nil table uses DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized = append(normalized, Rule{Intent: r.Intent, Keywords: kws})
	}
	return &Classifier{rules: normalized}
}

// Classify returns the intent of the first rule with a keyword hit,
// or IntentHelp when nothing matches.
func (c *Classifier) Classify(prompt string) models.Intent {
	text := strings.ToLower(prompt)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Intent
			}
		}
	}
	return models.IntentHelp
}

// Classify runs the default rule table.
func Classify(prompt string) models.Intent {
	return defaultClassifier.Classify(prompt)
}

var defaultClassifier = New(DefaultRules)
