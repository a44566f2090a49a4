package domain

// InfraKind selects the analysis prompt and default suggestion set.
type InfraKind string

const (
	InfraKubernetes InfraKind = "kubernetes"
	InfraDockerfile InfraKind = "dockerfile"
)

// InfraAnalysis groups optimization suggestions for one configuration file.
// Kubernetes analyses fill Reliability/Scalability; Dockerfile analyses fill
// Size/Caching.
type InfraAnalysis struct {
	Security      []string `json:"security"`
	Performance   []string `json:"performance"`
	Reliability   []string `json:"reliability,omitempty"`
	Scalability   []string `json:"scalability,omitempty"`
	Size          []string `json:"size,omitempty"`
	Caching       []string `json:"caching,omitempty"`
	BestPractices []string `json:"bestPractices"`
}
