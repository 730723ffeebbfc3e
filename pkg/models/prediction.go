package models

// PredictionStatusSuccess is the status value the service reports on success.
const PredictionStatusSuccess = "success"

// ── Prediction Request ──────────────────────────────────────

// PredictRequest is the batch envelope sent to the prediction endpoint.
type PredictRequest struct {
	Instances []interface{} `json:"instances"`
}

// AnalyzeInstance asks the service to analyze (and optionally deploy) a repository.
type AnalyzeInstance struct {
	RepositoryURL     string `json:"repository_url"`
	Branch            string `json:"branch"`
	Namespace         string `json:"namespace"`
	DeploymentType    string `json:"deployment_type"`
	DeployImmediately bool   `json:"deploy_immediately"`
}

// StatusInstance asks the service for the live state of a deployment.
type StatusInstance struct {
	Action    string `json:"action"`
	Namespace string `json:"namespace"`
	AppName   string `json:"app_name"`
}

// ── Analyze / Deploy Prediction ─────────────────────────────

// Prediction is one analyze-and-deploy result. Every nested section is
// optional; the service omits what it could not compute.
type Prediction struct {
	Status           string            `json:"status"`
	Error            string            `json:"error,omitempty"`
	Analysis         *Analysis         `json:"analysis,omitempty"`
	DeploymentConfig *DeploymentConfig `json:"deployment_config,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
}

// Succeeded reports whether the service processed the request.
func (p *Prediction) Succeeded() bool {
	return p != nil && p.Status == PredictionStatusSuccess
}

// Analysis describes the analyzed repository.
type Analysis struct {
	Repository      string         `json:"repository"`
	Branch          string         `json:"branch,omitempty"`
	ApplicationType string         `json:"application_type"`
	Language        string         `json:"language,omitempty"`
	Size            int64          `json:"size"` // KB, as reported by GitHub
	Topics          []string       `json:"topics,omitempty"`
	FileStructure   FileStructure  `json:"file_structure"`
	Dependencies    Dependencies   `json:"dependencies"`
	Documentation   Documentation  `json:"documentation"`
	DockerAnalysis  DockerAnalysis `json:"docker_analysis"`
}

// FileStructure is a bounded-depth tree of the repository.
type FileStructure struct {
	Files       []string                 `json:"files,omitempty"`
	Directories map[string]FileStructure `json:"directories,omitempty"`
	KeyFiles    []KeyFile                `json:"key_files,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

// KeyFile is a file that influences deployment decisions.
type KeyFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Dependencies summarizes package manager findings.
type Dependencies struct {
	PackageManagers         []string `json:"package_managers,omitempty"`
	Dependencies            []string `json:"dependencies,omitempty"`
	DevDependencies         []string `json:"dev_dependencies,omitempty"`
	SecurityVulnerabilities []string `json:"security_vulnerabilities,omitempty"`
}

// Documentation summarizes the README.
type Documentation struct {
	Readme            string `json:"readme,omitempty"`
	HasDocs           bool   `json:"has_docs"`
	SetupInstructions bool   `json:"setup_instructions"`
}

// DockerAnalysis describes an existing Dockerfile, if any.
type DockerAnalysis struct {
	HasDockerfile    bool   `json:"has_dockerfile"`
	BaseImage        string `json:"base_image,omitempty"`
	ExposedPorts     []int  `json:"exposed_ports,omitempty"`
	CustomDockerfile bool   `json:"custom_dockerfile"`
}

// DeploymentConfig is the generated deployment bundle. Manifests are kept
// as raw maps because the host only re-renders them.
type DeploymentConfig struct {
	AppName          string                 `json:"app_name"`
	Namespace        string                 `json:"namespace"`
	ApplicationType  string                 `json:"application_type"`
	Deployment       map[string]interface{} `json:"deployment,omitempty"`
	Service          map[string]interface{} `json:"service,omitempty"`
	Route            map[string]interface{} `json:"route,omitempty"`
	Dockerfile       string                 `json:"dockerfile,omitempty"`
	GitHubActions    map[string]interface{} `json:"github_actions,omitempty"`
	ResourcesNeeded  *Resources             `json:"resources_needed,omitempty"`
	DeploymentResult *DeploymentResult      `json:"deployment_result,omitempty"`
}

// Resources mirrors a Kubernetes resource requirements block.
type Resources struct {
	Requests map[string]string `json:"requests,omitempty"`
	Limits   map[string]string `json:"limits,omitempty"`
}

// DeploymentResult is present when the service applied the manifests.
type DeploymentResult struct {
	Status    string `json:"status"`
	AppName   string `json:"app_name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ── Status Prediction ───────────────────────────────────────

// StatusPrediction is the live state of one deployment.
type StatusPrediction struct {
	Status     string           `json:"status,omitempty"`
	Error      string           `json:"error,omitempty"`
	Deployment *DeploymentState `json:"deployment,omitempty"`
	Pods       []PodState       `json:"pods,omitempty"`
	Services   []ServiceState   `json:"services,omitempty"`
	Routes     []RouteState     `json:"routes,omitempty"`
}

// DeploymentState mirrors the replica counters of a Deployment.
type DeploymentState struct {
	Name          string `json:"name,omitempty"`
	Replicas      int    `json:"replicas"`
	ReadyReplicas int    `json:"readyReplicas"`
}

// PodState is a one-line pod summary.
type PodState struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Ready    bool   `json:"ready"`
	Restarts int    `json:"restarts"`
}

// ServiceState is a one-line service summary.
type ServiceState struct {
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	ClusterIP string `json:"cluster_ip,omitempty"`
	Ports     []int  `json:"ports,omitempty"`
}

// RouteState is an externally reachable route.
type RouteState struct {
	Name string `json:"name,omitempty"`
	Host string `json:"host,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Address returns the route URL, deriving one from the host if needed.
func (r RouteState) Address() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Host != "" {
		return "https://" + r.Host
	}
	return ""
}
