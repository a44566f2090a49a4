package domain

// Config holds API credentials and tunables sourced from the environment
// with an optional .env overlay under the data directory.
type Config struct {
	SerperAPIKey      string
	OpenAIAPIKey      string
	ReplicateAPIToken string

	OpenAIModel       string
	OpenAIBaseURL     string
	LlamaModelVersion string

	// HistoryBackend selects the history store: "file" (default) or "sqlite".
	HistoryBackend string

	// DataDir is where the history, cache and .env files live.
	DataDir string
}
