package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	KeyFile    string   `json:"key_file" yaml:"key_file" toml:"key_file"`
	Provider   string   `json:"provider" yaml:"provider" toml:"provider"`
	Model      string   `json:"model" yaml:"model" toml:"model"`
	MaxResults int      `json:"max_results" yaml:"max_results" toml:"max_results"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
}
