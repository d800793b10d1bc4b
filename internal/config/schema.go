package config

// Config holds echo configuration.
// Stored at: ~/.echo/config.yaml
type Config struct {
	LLM      LLMCfg      `mapstructure:"llm" yaml:"llm"`
	Pipeline PipelineCfg `mapstructure:"pipeline" yaml:"pipeline"`
	Record   RecordCfg   `mapstructure:"record" yaml:"record"`
}

// LLMCfg configures the reasoning backend used for all analysis stages.
type LLMCfg struct {
	// BaseURL is any OpenAI-compatible endpoint (Ollama works: http://localhost:11434/v1).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// APIKey supports ${ENV_VAR} syntax.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Model is the model name passed to the backend.
	Model string `mapstructure:"model" yaml:"model"`
	// Temperature for all stage requests.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	// MaxTokens per stage response.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
	// TimeoutSeconds is the HTTP timeout per request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	// MaxRetries is the transport retry budget per request.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
}

// PipelineCfg configures stage execution behavior.
type PipelineCfg struct {
	// ModelCorrection runs the final JSON structure correction as an LLM
	// pass instead of the local sanitizer.
	ModelCorrection bool `mapstructure:"model_correction" yaml:"model_correction"`
}

// RecordCfg configures LLM call recording.
type RecordCfg struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// DBPath overrides the default ~/.echo/calls.db location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMCfg{
			BaseURL:        "http://localhost:11434/v1",
			APIKey:         "${OPENAI_API_KEY}",
			Model:          "mistral",
			Temperature:    0.1,
			MaxTokens:      1024,
			TimeoutSeconds: 120,
			MaxRetries:     3,
		},
		Pipeline: PipelineCfg{
			ModelCorrection: false,
		},
		Record: RecordCfg{
			Enabled: true,
		},
	}
}
