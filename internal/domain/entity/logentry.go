package entity

// LogEntry é a forma achatada de uma entrada do Cloud Logging, pronta para
// tabelas e exportação.
type LogEntry struct {
	Timestamp    string `json:"timestamp"`
	Severity     string `json:"severity"`
	ResourceType string `json:"resource_type"`
	LogName      string `json:"log_name"`
	TextPayload  string `json:"text_payload"`
	JSONPayload  string `json:"json_payload"`
	Labels       string `json:"labels"`
}
