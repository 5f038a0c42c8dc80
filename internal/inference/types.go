package inference

// Request is one validated inference request. CloudProvider, when set, is an
// explicit override that bypasses availability-based selection.
type Request struct {
	Prompt        string  `json:"prompt"`
	MaxTokens     int     `json:"max_tokens"`
	Temperature   float64 `json:"temperature"`
	CloudProvider string  `json:"cloud_provider,omitempty"`
}

// Response is the backend's answer, passed through unmodified except for
// CloudProvider, which names the backend that served the request. Latency is
// the backend-reported generation time in seconds.
type Response struct {
	Text          string  `json:"text"`
	CloudProvider string  `json:"cloud_provider"`
	Model         string  `json:"model"`
	Latency       float64 `json:"latency"`
}
