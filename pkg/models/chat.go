package models

// ── Intents ─────────────────────────────────────────────────

// Intent is the classified purpose of a chat prompt.
type Intent string

const (
	IntentDeploy  Intent = "deploy"
	IntentAnalyze Intent = "analyze"
	IntentStatus  Intent = "status"
	IntentHelp    Intent = "help"
)

// ── Slots ───────────────────────────────────────────────────

// DeploymentOptions holds the parameters pulled out of a deploy or analyze
// prompt. Empty fields fall back to client-side defaults.
type DeploymentOptions struct {
	Namespace         string `json:"namespace,omitempty"`
	Branch            string `json:"branch,omitempty"`
	DeploymentType    string `json:"deployment_type,omitempty"`
	DeployImmediately bool   `json:"deploy_immediately,omitempty"`
}

// StatusQuery identifies the deployment a status prompt refers to.
// Both fields may be empty, which means the user must be asked again.
type StatusQuery struct {
	AppName   string `json:"app_name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// Complete reports whether both the app name and namespace are known.
func (q StatusQuery) Complete() bool {
	return q.AppName != "" && q.Namespace != ""
}

// ── Chat Request / Reply ────────────────────────────────────

// ChatContext is the loosely-structured context the host attaches to a prompt.
type ChatContext struct {
	// WorkspaceURI points at the open workspace folder (file:// URI or path).
	WorkspaceURI string `json:"workspaceUri,omitempty"`
	// Prompt is conversation text that may carry an inline repository URL.
	Prompt string `json:"prompt,omitempty"`
}

// ChatRequest is one prompt submitted by the host adapter.
type ChatRequest struct {
	Prompt  string      `json:"prompt"`
	Context ChatContext `json:"context"`
}

// ActionTag names a host-side operation attached to a reply.
// The dispatcher never performs these itself.
type ActionTag string

const (
	ActionShowDeploymentDetails ActionTag = "showDeploymentDetails"
	ActionCheckDeploymentStatus ActionTag = "checkDeploymentStatus"
	ActionDeployRepository      ActionTag = "deployRepository"
	ActionGenerateConfig        ActionTag = "generateConfig"
	ActionOpenURL               ActionTag = "openUrl"
)

// Action is a follow-up button rendered by the host.
type Action struct {
	Label  string      `json:"label"`
	Action ActionTag   `json:"action"`
	Data   interface{} `json:"data,omitempty"`
}

// ChatReply is the unit returned to the host adapter. Response is never empty.
type ChatReply struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
	Actions     []Action `json:"actions,omitempty"`
}

// StatusTarget is the payload of a checkDeploymentStatus action.
type StatusTarget struct {
	AppName   string `json:"appName"`
	Namespace string `json:"namespace"`
}

// DeployTarget is the payload of a deployRepository action.
type DeployTarget struct {
	RepositoryURL string `json:"repositoryUrl"`
	Branch        string `json:"branch,omitempty"`
	Namespace     string `json:"namespace,omitempty"`
}

// OpenURLTarget is the payload of an openUrl action.
type OpenURLTarget struct {
	URL string `json:"url"`
}
