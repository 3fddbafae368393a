package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SIDx15/CloudProbe/internal/application/usecase"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
	"github.com/SIDx15/CloudProbe/pkg/version"
)

// exampleQuestions são as perguntas de exemplo oferecidas no modo interativo.
var exampleQuestions = []string{
	"How many Dataflow jobs failed today?",
	"What was the cost incurred in the last 24 hours?",
	"Show me all ERROR level logs from today",
	"How many Cloud Function invocations failed this week?",
	"What are the most common errors in my GKE clusters?",
	"Show me billing-related logs from today",
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	probeUseCase *usecase.ProbeUseCase
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "cloudprobe",
		Short:   "CloudProbe - GCP Logging Assistant",
		Long:    "Ask questions about your GCP resources and get intelligent insights from Cloud Logging data.",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "CloudProbe version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("key-file", "k", "", "Path to the GCP service account JSON key (default: $GOOGLE_APPLICATION_CREDENTIALS)")
	rootCmd.PersistentFlags().StringP("question", "q", "", "Natural-language question about your GCP logs")
	rootCmd.PersistentFlags().StringP("provider", "P", "", "LLM provider: gemini or groq (default: gemini)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model name (default: provider-specific)")
	rootCmd.PersistentFlags().String("api-key", "", "LLM API key (default: $GEMINI_API_KEY or $GROQ_API_KEY)")
	rootCmd.PersistentFlags().IntP("max-results", "M", 0, "Maximum number of log entries to fetch (default: 100)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf (default: csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("query-only", false, "Generate and display the query without executing it")
	rootCmd.PersistentFlags().Int("show-raw", 10, "How many raw entries to display in the terminal")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	keyFile, _ := app.rootCmd.Flags().GetString("key-file")
	question, _ := app.rootCmd.Flags().GetString("question")
	provider, _ := app.rootCmd.Flags().GetString("provider")
	model, _ := app.rootCmd.Flags().GetString("model")
	apiKey, _ := app.rootCmd.Flags().GetString("api-key")
	maxResults, _ := app.rootCmd.Flags().GetInt("max-results")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	queryOnly, _ := app.rootCmd.Flags().GetBool("query-only")
	showRaw, _ := app.rootCmd.Flags().GetInt("show-raw")

	// Resolve padrões a partir do ambiente. A chave da API fica por conta do
	// use case: o provedor pode vir do arquivo de configuração.
	if keyFile == "" {
		keyFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		KeyFile:    keyFile,
		Question:   question,
		Provider:   provider,
		Model:      model,
		APIKey:     apiKey,
		MaxResults: maxResults,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		QueryOnly:  queryOnly,
		ShowRaw:    showRaw,
	}

	return args, nil
}

// promptForQuestion pergunta interativamente quando --question não foi passado,
// oferecendo as perguntas de exemplo como atalho.
func promptForQuestion() (string, error) {
	const typeYourOwn = "Type your own question"

	options := append([]string{typeYourOwn}, exampleQuestions...)
	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		Show("Select an example or type your own question")
	if err != nil {
		return "", err
	}

	if selected != typeYourOwn {
		return selected, nil
	}

	return pterm.DefaultInteractiveTextInput.Show("Enter your question")
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	if cliArgs.Question == "" {
		question, err := promptForQuestion()
		if err != nil {
			return err
		}
		cliArgs.Question = question
	}

	// Executa o probe
	ctx := context.Background()
	return app.probeUseCase.RunProbe(ctx, cliArgs)
}

// SetProbeUseCase sets the probe use case for the CLI app.
func (app *CLIApp) SetProbeUseCase(useCase *usecase.ProbeUseCase) {
	app.probeUseCase = useCase
}
