package repository

import "github.com/SIDx15/CloudProbe/internal/domain/entity"

// ExportRepository defines the interface for writing probe reports to disk.
type ExportRepository interface {
	ExportToCSV(report entity.ProbeReport, filename, outputDir string) (string, error)
	ExportToJSON(report entity.ProbeReport, filename, outputDir string) (string, error)
	ExportToPDF(report entity.ProbeReport, filename, outputDir string) (string, error)
}
