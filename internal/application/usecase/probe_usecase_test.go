package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/SIDx15/CloudProbe/internal/shared/types"
)

// --- fakes ---

type fakeGCPRepo struct {
	key     *entity.ServiceAccountKey
	entries []entity.LogEntry
	gotKey  []byte
	gotQ    string
	gotMax  int
	closed  bool
}

func (f *fakeGCPRepo) ValidateCredentials(ctx context.Context, keyJSON []byte) (*entity.ServiceAccountKey, error) {
	f.gotKey = keyJSON
	if f.key == nil {
		return nil, errors.New("bad key")
	}
	return f.key, nil
}

func (f *fakeGCPRepo) ExecuteQuery(ctx context.Context, filter string, maxResults int) ([]entity.LogEntry, error) {
	f.gotQ = filter
	f.gotMax = maxResults
	return f.entries, nil
}

func (f *fakeGCPRepo) Close() error {
	f.closed = true
	return nil
}

type fakeLLMRepo struct {
	query       string
	analysis    string
	gotQuestion string
	gotSamples  int
	gotSummary  entity.ResultsSummary
	calls       int
}

func (f *fakeLLMRepo) GenerateQuery(ctx context.Context, question string) (string, error) {
	f.gotQuestion = question
	return f.query, nil
}

func (f *fakeLLMRepo) AnalyzeResults(ctx context.Context, question string, summary entity.ResultsSummary, samples []entity.LogEntry) (string, error) {
	f.calls++
	f.gotSummary = summary
	f.gotSamples = len(samples)
	return f.analysis, nil
}

type fakeExportRepo struct {
	csv, json, pdf int
	lastReport     entity.ProbeReport
}

func (f *fakeExportRepo) ExportToCSV(report entity.ProbeReport, filename, outputDir string) (string, error) {
	f.csv++
	f.lastReport = report
	return filepath.Join(outputDir, filename+".csv"), nil
}

func (f *fakeExportRepo) ExportToJSON(report entity.ProbeReport, filename, outputDir string) (string, error) {
	f.json++
	f.lastReport = report
	return filepath.Join(outputDir, filename+".json"), nil
}

func (f *fakeExportRepo) ExportToPDF(report entity.ProbeReport, filename, outputDir string) (string, error) {
	f.pdf++
	f.lastReport = report
	return filepath.Join(outputDir, filename+".pdf"), nil
}

type fakeConfigRepo struct {
	cfg *types.Config
}

func (f *fakeConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	if f.cfg == nil {
		return nil, errors.New("no config")
	}
	return f.cfg, nil
}

type fakeConsole struct{}

func (fakeConsole) Print(a ...interface{})                           {}
func (fakeConsole) Printf(format string, a ...interface{})           {}
func (fakeConsole) Println(a ...interface{})                         {}
func (fakeConsole) LogInfo(format string, a ...interface{})          {}
func (fakeConsole) LogWarning(format string, a ...interface{})       {}
func (fakeConsole) LogError(format string, a ...interface{})         {}
func (fakeConsole) LogSuccess(format string, a ...interface{})       {}
func (fakeConsole) Status(message string) types.StatusHandle         { return fakeStatus{} }
func (fakeConsole) CreateTable() types.TableInterface                { return &fakeTable{} }
func (fakeConsole) DisplaySeverityBars(counts []types.SeverityCount) {}
func (fakeConsole) DisplayPanel(title, content string)               {}

type fakeStatus struct{}

func (fakeStatus) Update(message string) {}
func (fakeStatus) Stop()                 {}

type fakeTable struct{}

func (*fakeTable) AddColumn(name string, options ...interface{}) {}
func (*fakeTable) AddRow(cells ...interface{})                   {}
func (*fakeTable) Render() string                                { return "" }

// --- helpers ---

func newTestUseCase(gcpRepo *fakeGCPRepo, llmRepo *fakeLLMRepo, exportRepo *fakeExportRepo, cfgRepo *fakeConfigRepo) *ProbeUseCase {
	factory := func(provider, model, apiKey string) (repository.LLMRepository, error) {
		return llmRepo, nil
	}
	return NewProbeUseCase(gcpRepo, exportRepo, cfgRepo, fakeConsole{}, factory)
}

func writeKeyFile(t *testing.T) string {
	t.Helper()
	key := map[string]string{
		"type":         "service_account",
		"project_id":   "probe-project",
		"client_id":    "1",
		"client_email": "probe@probe-project.iam.gserviceaccount.com",
		"private_key":  "pk",
	}
	data, _ := json.Marshal(key)
	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}
	return path
}

// --- tests ---

func TestAnalyzeResultsEmpty(t *testing.T) {
	llmRepo := &fakeLLMRepo{analysis: "should not be used"}
	uc := newTestUseCase(&fakeGCPRepo{}, llmRepo, &fakeExportRepo{}, &fakeConfigRepo{})

	got, err := uc.AnalyzeResults(context.Background(), llmRepo, "anything?", nil)
	if err != nil {
		t.Fatalf("AnalyzeResults(empty) returned error: %v", err)
	}
	if got != "No results found for your query." {
		t.Errorf("AnalyzeResults(empty) = %q, want the fixed no-results message", got)
	}
	if llmRepo.calls != 0 {
		t.Errorf("LLM was called %d times for empty results, want 0", llmRepo.calls)
	}
}

func TestAnalyzeResultsSamplesCapped(t *testing.T) {
	llmRepo := &fakeLLMRepo{analysis: "ok"}
	uc := newTestUseCase(&fakeGCPRepo{}, llmRepo, &fakeExportRepo{}, &fakeConfigRepo{})

	entries := make([]entity.LogEntry, 5)
	for i := range entries {
		entries[i] = entity.LogEntry{Severity: "ERROR"}
	}

	if _, err := uc.AnalyzeResults(context.Background(), llmRepo, "q", entries); err != nil {
		t.Fatalf("AnalyzeResults returned error: %v", err)
	}
	if llmRepo.gotSamples != 3 {
		t.Errorf("samples sent to LLM = %d, want 3", llmRepo.gotSamples)
	}
	if llmRepo.gotSummary.TotalEntries != 5 {
		t.Errorf("summary total = %d, want 5", llmRepo.gotSummary.TotalEntries)
	}
}

func TestMergeConfigFilePrecedence(t *testing.T) {
	cfgRepo := &fakeConfigRepo{cfg: &types.Config{
		KeyFile:    "/from/config/key.json",
		Provider:   "groq",
		MaxResults: 25,
	}}
	uc := newTestUseCase(&fakeGCPRepo{}, &fakeLLMRepo{}, &fakeExportRepo{}, cfgRepo)

	args := &types.CLIArgs{
		ConfigFile: "probe.yaml",
		Provider:   "gemini", // flag wins
	}
	if err := uc.MergeConfigFile(args); err != nil {
		t.Fatalf("MergeConfigFile returned error: %v", err)
	}
	if args.Provider != "gemini" {
		t.Errorf("Provider = %q, flag value should win over config", args.Provider)
	}
	if args.KeyFile != "/from/config/key.json" {
		t.Errorf("KeyFile = %q, config should fill unset flags", args.KeyFile)
	}
	if args.MaxResults != 25 {
		t.Errorf("MaxResults = %d, want 25 from config", args.MaxResults)
	}
}

func TestRunProbe(t *testing.T) {
	gcpRepo := &fakeGCPRepo{
		key: &entity.ServiceAccountKey{ProjectID: "probe-project"},
		entries: []entity.LogEntry{
			{Timestamp: "2024-06-01T08:00:00Z", Severity: "ERROR", ResourceType: "dataflow_job"},
		},
	}
	llmRepo := &fakeLLMRepo{query: `severity="ERROR"`, analysis: "one job failed"}
	exportRepo := &fakeExportRepo{}
	uc := newTestUseCase(gcpRepo, llmRepo, exportRepo, &fakeConfigRepo{})

	args := &types.CLIArgs{
		KeyFile:    writeKeyFile(t),
		Question:   "what failed?",
		APIKey:     "test-key",
		ReportName: "probe",
		ReportType: []string{"csv", "json"},
		Dir:        t.TempDir(),
	}
	if err := uc.RunProbe(context.Background(), args); err != nil {
		t.Fatalf("RunProbe returned error: %v", err)
	}

	if llmRepo.gotQuestion != "what failed?" {
		t.Errorf("question sent to LLM = %q", llmRepo.gotQuestion)
	}
	if gcpRepo.gotQ != `severity="ERROR"` {
		t.Errorf("filter executed = %q, want the generated query", gcpRepo.gotQ)
	}
	if gcpRepo.gotMax != 100 {
		t.Errorf("maxResults = %d, want default 100", gcpRepo.gotMax)
	}
	if exportRepo.csv != 1 || exportRepo.json != 1 || exportRepo.pdf != 0 {
		t.Errorf("exports = csv:%d json:%d pdf:%d, want 1/1/0", exportRepo.csv, exportRepo.json, exportRepo.pdf)
	}
	if exportRepo.lastReport.Analysis != "one job failed" {
		t.Errorf("exported analysis = %q", exportRepo.lastReport.Analysis)
	}
	if !gcpRepo.closed {
		t.Errorf("logging client was not closed")
	}
}

func TestRunProbeConfigFileProvider(t *testing.T) {
	gcpRepo := &fakeGCPRepo{key: &entity.ServiceAccountKey{ProjectID: "probe-project"}}
	llmRepo := &fakeLLMRepo{query: `severity="ERROR"`, analysis: "ok"}
	gcpRepo.entries = []entity.LogEntry{{Severity: "ERROR"}}
	exportRepo := &fakeExportRepo{}
	cfgRepo := &fakeConfigRepo{cfg: &types.Config{
		Provider:   "groq",
		ReportType: []string{"pdf"},
	}}

	var gotProvider, gotAPIKey string
	factory := func(provider, model, apiKey string) (repository.LLMRepository, error) {
		gotProvider = provider
		gotAPIKey = apiKey
		return llmRepo, nil
	}
	uc := NewProbeUseCase(gcpRepo, exportRepo, cfgRepo, fakeConsole{}, factory)

	t.Setenv("GROQ_API_KEY", "groq-env-key")
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")

	// Exatamente o que a CLI entrega quando só --config-file é passado:
	// provedor e formatos de relatório ficam vazios até o merge.
	args := &types.CLIArgs{
		ConfigFile: "probe.yaml",
		KeyFile:    writeKeyFile(t),
		Question:   "what failed?",
		ReportName: "probe",
		Dir:        t.TempDir(),
	}
	if err := uc.RunProbe(context.Background(), args); err != nil {
		t.Fatalf("RunProbe returned error: %v", err)
	}

	if gotProvider != "groq" {
		t.Errorf("provider = %q, want groq from the config file", gotProvider)
	}
	if gotAPIKey != "groq-env-key" {
		t.Errorf("api key = %q, env lookup should follow the merged provider", gotAPIKey)
	}
	if exportRepo.pdf != 1 || exportRepo.csv != 0 {
		t.Errorf("exports = csv:%d pdf:%d, want the config file's report_type", exportRepo.csv, exportRepo.pdf)
	}
}

func TestRunProbeDefaults(t *testing.T) {
	gcpRepo := &fakeGCPRepo{
		key:     &entity.ServiceAccountKey{ProjectID: "probe-project"},
		entries: []entity.LogEntry{{Severity: "ERROR"}},
	}
	llmRepo := &fakeLLMRepo{query: `severity="ERROR"`, analysis: "ok"}
	exportRepo := &fakeExportRepo{}

	var gotProvider string
	factory := func(provider, model, apiKey string) (repository.LLMRepository, error) {
		gotProvider = provider
		return llmRepo, nil
	}
	uc := NewProbeUseCase(gcpRepo, exportRepo, &fakeConfigRepo{}, fakeConsole{}, factory)

	args := &types.CLIArgs{
		KeyFile:    writeKeyFile(t),
		Question:   "anything?",
		APIKey:     "test-key",
		ReportName: "probe",
		Dir:        t.TempDir(),
	}
	if err := uc.RunProbe(context.Background(), args); err != nil {
		t.Fatalf("RunProbe returned error: %v", err)
	}

	if gotProvider != "gemini" {
		t.Errorf("provider = %q, want the gemini fallback", gotProvider)
	}
	if exportRepo.csv != 1 {
		t.Errorf("csv exports = %d, want the csv fallback", exportRepo.csv)
	}
	if gcpRepo.gotMax != 100 {
		t.Errorf("maxResults = %d, want default 100", gcpRepo.gotMax)
	}
}

func TestRunProbeNoKeyFile(t *testing.T) {
	uc := newTestUseCase(&fakeGCPRepo{}, &fakeLLMRepo{}, &fakeExportRepo{}, &fakeConfigRepo{})

	err := uc.RunProbe(context.Background(), &types.CLIArgs{Question: "anything?", APIKey: "test-key"})
	if !errors.Is(err, types.ErrNoKeyFile) {
		t.Errorf("RunProbe without key file = %v, want ErrNoKeyFile", err)
	}
}

func TestTruncatePayloadRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := truncatePayload(long, 80)
	if !utf8.ValidString(got) {
		t.Errorf("truncated payload is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated payload = %q, want ... suffix", got)
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("truncated payload length = %d runes, want 80", n)
	}

	short := "café"
	if truncatePayload(short, 80) != short {
		t.Errorf("short payload was modified")
	}
}

func TestRunProbeNoQuestion(t *testing.T) {
	uc := newTestUseCase(&fakeGCPRepo{}, &fakeLLMRepo{}, &fakeExportRepo{}, &fakeConfigRepo{})

	err := uc.RunProbe(context.Background(), &types.CLIArgs{KeyFile: "unused"})
	if !errors.Is(err, types.ErrNoQuestion) {
		t.Errorf("RunProbe without question = %v, want ErrNoQuestion", err)
	}
}

func TestRunProbeNoResults(t *testing.T) {
	gcpRepo := &fakeGCPRepo{key: &entity.ServiceAccountKey{ProjectID: "probe-project"}}
	llmRepo := &fakeLLMRepo{query: `severity="ERROR"`}
	exportRepo := &fakeExportRepo{}
	uc := newTestUseCase(gcpRepo, llmRepo, exportRepo, &fakeConfigRepo{})

	args := &types.CLIArgs{
		KeyFile:    writeKeyFile(t),
		Question:   "anything?",
		APIKey:     "test-key",
		ReportName: "probe",
		ReportType: []string{"csv"},
	}
	if err := uc.RunProbe(context.Background(), args); err != nil {
		t.Fatalf("RunProbe returned error: %v", err)
	}
	if llmRepo.calls != 0 {
		t.Errorf("analysis LLM calls = %d, want 0 for no results", llmRepo.calls)
	}
	if exportRepo.csv != 0 {
		t.Errorf("report exported despite empty results")
	}
}

func TestRunProbeQueryOnly(t *testing.T) {
	gcpRepo := &fakeGCPRepo{key: &entity.ServiceAccountKey{ProjectID: "probe-project"}}
	llmRepo := &fakeLLMRepo{query: `severity="ERROR"`}
	uc := newTestUseCase(gcpRepo, llmRepo, &fakeExportRepo{}, &fakeConfigRepo{})

	args := &types.CLIArgs{
		KeyFile:   writeKeyFile(t),
		Question:  "what failed?",
		APIKey:    "test-key",
		QueryOnly: true,
	}
	if err := uc.RunProbe(context.Background(), args); err != nil {
		t.Fatalf("RunProbe returned error: %v", err)
	}
	if gcpRepo.gotQ != "" {
		t.Errorf("query was executed in query-only mode: %q", gcpRepo.gotQ)
	}
}
