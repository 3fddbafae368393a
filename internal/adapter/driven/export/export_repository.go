package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
	"github.com/SIDx15/CloudProbe/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes the raw entries, one row per entry, preceded by a header.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.ProbeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"timestamp", "severity", "resource_type", "log_name",
		"text_payload", "json_payload", "labels",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range report.Entries {
		record := []string{
			row.Timestamp,
			row.Severity,
			row.ResourceType,
			row.LogName,
			cleanRichTags(row.TextPayload),
			row.JSONPayload,
			row.Labels,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON writes the full report: question, query, entries, summary and analysis.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.ProbeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	clean := report
	clean.Analysis = cleanRichTags(report.Analysis)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(clean); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF renders a one-report document: header, query, summary, analysis
// and a sample of the entries.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.ProbeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{66, 133, 244}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  CloudProbe Report"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Project: %s", report.ProjectID)), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Question: %s", report.Question)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	drawSection("Generated Query", report.Query)

	// Resumo
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total Entries: %d\n", report.Summary.TotalEntries))
	if report.Summary.TimeRange.Earliest != "" {
		b.WriteString(fmt.Sprintf("Time Range: %s to %s\n", report.Summary.TimeRange.Earliest, report.Summary.TimeRange.Latest))
	}
	b.WriteString("\nBy Severity:\n")
	for _, line := range sortedCountLines(report.Summary.SeverityCounts) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\nBy Resource Type:\n")
	for _, line := range sortedCountLines(report.Summary.ResourceTypes) {
		b.WriteString("  " + line + "\n")
	}
	drawSection("Results Summary", b.String())

	drawSection("Analysis & Insights", report.Analysis)

	// Amostra das entradas
	if len(report.Entries) > 0 {
		var s strings.Builder
		limit := len(report.Entries)
		if limit > 15 {
			limit = 15
		}
		for i := 0; i < limit; i++ {
			e := report.Entries[i]
			payload := e.TextPayload
			if payload == "" {
				payload = e.JSONPayload
			}
			s.WriteString(fmt.Sprintf("%s | %s | %s\n%s\n\n", e.Timestamp, e.Severity, e.ResourceType, truncatePayload(payload, 160)))
		}
		if len(report.Entries) > limit {
			s.WriteString(fmt.Sprintf("... (+%d more)\n", len(report.Entries)-limit))
		}
		drawSection("Sample Entries", s.String())
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Powered by CloudProbe - Intelligent GCP Analysis | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// sortedCountLines formata um mapa de contagens em linhas "chave: n" ordenadas
// por contagem decrescente, depois por chave.
func sortedCountLines(counts map[string]int) []string {
	type kv struct {
		k string
		v int
	}
	pairs := make([]kv, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, kv{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].v != pairs[j].v {
			return pairs[i].v > pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%s: %d", p.k, p.v))
	}
	return lines
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
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
