package usecase

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

// noResultsMessage é a resposta fixa para consultas sem resultados.
const noResultsMessage = "No results found for your query."

// defaultMaxResults limits how many entries a query returns when the user
// does not say otherwise.
const defaultMaxResults = 100

// sampleEntries é quantas entradas brutas acompanham o prompt de análise.
const sampleEntries = 3

// defaultProvider é usado quando nem as flags nem o arquivo de configuração
// escolhem um provedor.
const defaultProvider = "gemini"

// LLMFactory builds an LLMRepository for a provider/model/key triple.
type LLMFactory func(provider, model, apiKey string) (repository.LLMRepository, error)

// ProbeUseCase handles the main question-to-insight flow.
type ProbeUseCase struct {
	gcpRepo    repository.GCPRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	newLLM     LLMFactory
}

// NewProbeUseCase creates a new probe use case.
func NewProbeUseCase(
	gcpRepo repository.GCPRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
	newLLM LLMFactory,
) *ProbeUseCase {
	return &ProbeUseCase{
		gcpRepo:    gcpRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		newLLM:     newLLM,
	}
}

// MergeConfigFile carrega o arquivo de configuração e preenche os argumentos
// que não vieram da linha de comando. Flags explícitas têm precedência.
func (uc *ProbeUseCase) MergeConfigFile(args *types.CLIArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if args.KeyFile == "" {
		args.KeyFile = cfg.KeyFile
	}
	if args.Provider == "" {
		args.Provider = cfg.Provider
	}
	if args.Model == "" {
		args.Model = cfg.Model
	}
	if args.MaxResults == 0 {
		args.MaxResults = cfg.MaxResults
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.Dir
	}

	return nil
}

// applyDefaults resolve os valores que dependem do merge: provedor, formatos
// de relatório e a chave da API vinda do ambiente.
func applyDefaults(args *types.CLIArgs) {
	if args.Provider == "" {
		args.Provider = defaultProvider
	}
	if len(args.ReportType) == 0 {
		args.ReportType = []string{"csv"}
	}
	if args.MaxResults <= 0 {
		args.MaxResults = defaultMaxResults
	}
	if args.APIKey == "" {
		switch args.Provider {
		case "groq":
			args.APIKey = os.Getenv("GROQ_API_KEY")
		default:
			args.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// RunProbe executa o fluxo principal: valida credenciais, gera a consulta,
// executa, resume, analisa e exporta.
func (uc *ProbeUseCase) RunProbe(ctx context.Context, args *types.CLIArgs) error {
	if err := uc.MergeConfigFile(args); err != nil {
		return err
	}
	applyDefaults(args)

	if args.Question == "" {
		return types.ErrNoQuestion
	}
	if args.KeyFile == "" {
		return types.ErrNoKeyFile
	}

	// Valida as credenciais e conecta ao projeto
	keyJSON, err := os.ReadFile(args.KeyFile)
	if err != nil {
		return fmt.Errorf("error reading service account key file: %w", err)
	}

	status := uc.console.Status("Validating GCP credentials...")
	key, err := uc.gcpRepo.ValidateCredentials(ctx, keyJSON)
	status.Stop()
	if err != nil {
		uc.console.LogError("Invalid credentials: %s", err)
		return err
	}
	defer uc.gcpRepo.Close()
	uc.console.LogSuccess("Connected to project: %s", key.ProjectID)

	llmRepo, err := uc.newLLM(args.Provider, args.Model, args.APIKey)
	if err != nil {
		return err
	}

	// Gera a consulta a partir da pergunta
	status = uc.console.Status("Generating Cloud Logging query...")
	query, err := llmRepo.GenerateQuery(ctx, args.Question)
	status.Stop()
	if err != nil {
		uc.console.LogError("Failed to generate query: %s", err)
		return err
	}
	uc.console.DisplayPanel("Generated Query", query)

	if args.QueryOnly {
		return nil
	}

	// Executa a consulta
	status = uc.console.Status("Executing query...")
	results, err := uc.gcpRepo.ExecuteQuery(ctx, query, args.MaxResults)
	status.Stop()
	if err != nil {
		uc.console.LogError("Error executing query: %s", err)
		return err
	}

	if len(results) == 0 {
		uc.console.LogWarning("No results found for your query. Try rephrasing your question.")
		return nil
	}

	summary := entity.BuildResultsSummary(results)
	uc.displayMetrics(summary)
	uc.displayEntries(results, args.ShowRaw)
	uc.console.DisplaySeverityBars(severityCounts(summary))

	// Analisa os resultados
	status = uc.console.Status("Analyzing results...")
	analysis, err := uc.AnalyzeResults(ctx, llmRepo, args.Question, results)
	status.Stop()
	if err != nil {
		uc.console.LogError("Error analyzing results: %s", err)
		analysis = "Error analyzing results"
	}
	uc.console.DisplayPanel("Analysis & Insights", analysis)

	// Exporta o relatório se um nome for fornecido
	if args.ReportName != "" {
		report := entity.ProbeReport{
			ProjectID: key.ProjectID,
			Question:  args.Question,
			Query:     query,
			Entries:   results,
			Summary:   summary,
			Analysis:  analysis,
		}
		uc.exportReport(report, args)
	}

	return nil
}

// AnalyzeResults resume os resultados e pede a análise ao modelo. Resultados
// vazios devolvem a mensagem fixa sem chamar o modelo.
func (uc *ProbeUseCase) AnalyzeResults(ctx context.Context, llmRepo repository.LLMRepository, question string, results []entity.LogEntry) (string, error) {
	if len(results) == 0 {
		return noResultsMessage, nil
	}

	summary := entity.BuildResultsSummary(results)

	samples := results
	if len(samples) > sampleEntries {
		samples = samples[:sampleEntries]
	}

	return llmRepo.AnalyzeResults(ctx, question, summary, samples)
}

// displayMetrics mostra a linha de métricas: total, erros e tipos de recurso.
func (uc *ProbeUseCase) displayMetrics(summary entity.ResultsSummary) {
	table := uc.console.CreateTable()
	table.AddColumn("Total Entries")
	table.AddColumn("Error Entries")
	table.AddColumn("Resource Types")
	table.AddRow(
		fmt.Sprintf("%d", summary.TotalEntries),
		fmt.Sprintf("%d", summary.SeverityCounts["ERROR"]),
		fmt.Sprintf("%d", len(summary.ResourceTypes)),
	)
	uc.console.Println(table.Render())
}

// displayEntries mostra as primeiras entradas brutas em uma tabela.
func (uc *ProbeUseCase) displayEntries(results []entity.LogEntry, limit int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > len(results) {
		limit = len(results)
	}

	table := uc.console.CreateTable()
	table.AddColumn("Timestamp")
	table.AddColumn("Severity")
	table.AddColumn("Resource")
	table.AddColumn("Payload")

	for _, e := range results[:limit] {
		payload := e.TextPayload
		if payload == "" {
			payload = e.JSONPayload
		}
		table.AddRow(e.Timestamp, e.Severity, e.ResourceType, truncatePayload(payload, 80))
	}

	uc.console.Println(table.Render())
	if len(results) > limit {
		uc.console.LogInfo("Showing %d of %d entries", limit, len(results))
	}
}

// exportReport grava o relatório em cada formato solicitado.
func (uc *ProbeUseCase) exportReport(report entity.ProbeReport, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected csv, json, or pdf)", reportType)
		}
	}
}

// truncatePayload corta o payload em limite de runas, para não quebrar
// caracteres multibyte no meio.
func truncatePayload(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// severityCounts ordena as contagens de severidade para o gráfico de barras.
func severityCounts(summary entity.ResultsSummary) []types.SeverityCount {
	counts := make([]types.SeverityCount, 0, len(summary.SeverityCounts))
	for sev, n := range summary.SeverityCounts {
		counts = append(counts, types.SeverityCount{Severity: sev, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Severity < counts[j].Severity
	})
	return counts
}
