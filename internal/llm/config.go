package llm

import "time"

// Backend names a text-generation provider.
type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendOllama Backend = "ollama"
)

// GenerationConfig holds the sampling parameters sent with every call.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"top_k"`
	TopP            float64 `json:"top_p"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

// HarmCategory is a content-safety category. Values match the Gemini API.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// SafetyThreshold is the blocking threshold for a harm category.
type SafetyThreshold string

const (
	BlockNone           SafetyThreshold = "BLOCK_NONE"
	BlockOnlyHigh       SafetyThreshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
)

// ValidThresholds is the set of accepted threshold strings.
var ValidThresholds = map[SafetyThreshold]bool{
	BlockNone: true, BlockOnlyHigh: true, BlockMediumAndAbove: true, BlockLowAndAbove: true,
}

// SafetySetting pairs a harm category with its threshold.
type SafetySetting struct {
	Category  HarmCategory    `json:"category"`
	Threshold SafetyThreshold `json:"threshold"`
}

// SafetySettings applies one threshold to all four harm categories.
func SafetySettings(threshold SafetyThreshold) []SafetySetting {
	return []SafetySetting{
		{Category: HarmHarassment, Threshold: threshold},
		{Category: HarmHateSpeech, Threshold: threshold},
		{Category: HarmSexuallyExplicit, Threshold: threshold},
		{Category: HarmDangerousContent, Threshold: threshold},
	}
}

// Config holds all configuration for the generation gateway.
type Config struct {
	Backend         Backend
	Endpoint        string // base URL; empty uses the provider default for Gemini
	Model           string
	APIKey          string
	TimeoutMs       int
	Generation      GenerationConfig
	SafetyThreshold SafetyThreshold
}

// DefaultConfig returns a Config targeting Gemini with conservative sampling.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendGemini,
		Model:     "gemini-1.5-flash",
		TimeoutMs: 30000,
		Generation: GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
		SafetyThreshold: BlockMediumAndAbove,
	}
}

// DefaultOllamaEndpoint is used when the Ollama backend has no endpoint configured.
const DefaultOllamaEndpoint = "http://localhost:11434"

// Timeout returns the per-call deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Safety returns the configured safety settings for all categories.
func (c Config) Safety() []SafetySetting {
	return SafetySettings(c.SafetyThreshold)
}
