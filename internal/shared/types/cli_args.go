package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	KeyFile    string
	Question   string
	Provider   string
	Model      string
	APIKey     string
	MaxResults int
	ReportName string
	ReportType []string
	Dir        string
	QueryOnly  bool
	ShowRaw    int
}
