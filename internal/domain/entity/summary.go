package entity

// ResultsSummary condensa os resultados de uma consulta para o prompt de análise.
type ResultsSummary struct {
	TotalEntries   int            `json:"total_entries"`
	SeverityCounts map[string]int `json:"severity_counts"`
	ResourceTypes  map[string]int `json:"resource_types"`
	TimeRange      TimeRange      `json:"time_range"`
}

// TimeRange guarda os timestamps extremos (RFC3339) vistos nos resultados.
type TimeRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// BuildResultsSummary conta severidades e tipos de recurso e encontra o
// intervalo de tempo coberto pelos resultados. Entries sem timestamp são
// contadas mas ignoradas no intervalo.
func BuildResultsSummary(results []LogEntry) ResultsSummary {
	summary := ResultsSummary{
		TotalEntries:   len(results),
		SeverityCounts: make(map[string]int),
		ResourceTypes:  make(map[string]int),
	}

	for _, result := range results {
		sev := result.Severity
		if sev == "" {
			sev = "UNKNOWN"
		}
		resType := result.ResourceType
		if resType == "" {
			resType = "UNKNOWN"
		}
		summary.SeverityCounts[sev]++
		summary.ResourceTypes[resType]++

		ts := result.Timestamp
		if ts == "" {
			continue
		}
		// RFC3339 ordena lexicograficamente, comparação de string basta.
		if summary.TimeRange.Earliest == "" || ts < summary.TimeRange.Earliest {
			summary.TimeRange.Earliest = ts
		}
		if summary.TimeRange.Latest == "" || ts > summary.TimeRange.Latest {
			summary.TimeRange.Latest = ts
		}
	}

	return summary
}

// ProbeReport é o resultado completo de uma pergunta: a consulta gerada, as
// entradas retornadas, o resumo e a análise do modelo.
type ProbeReport struct {
	ProjectID string         `json:"project_id"`
	Question  string         `json:"question"`
	Query     string         `json:"query"`
	Entries   []LogEntry     `json:"entries"`
	Summary   ResultsSummary `json:"summary"`
	Analysis  string         `json:"analysis"`
}
