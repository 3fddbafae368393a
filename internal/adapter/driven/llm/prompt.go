package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SIDx15/CloudProbe/internal/domain/entity"
)

// queryPromptTemplate instructs the model to answer with nothing but a Cloud
// Logging filter string. Resource types and examples keep small models on the
// expected syntax.
const queryPromptTemplate = `You are an expert in Google Cloud Logging queries. Generate a Cloud Logging query based on the user's question.

User Question: %s

Guidelines:
1. Use proper Cloud Logging query syntax
2. Include relevant resource types (like gce_instance, dataflow_job, etc.)
3. Use appropriate time filters (today means last 24 hours)
4. Include severity levels when relevant
5. For cost queries, look for billing or cost-related logs
6. For failure queries, look for ERROR severity or specific error messages
7. Return ONLY the query string, no explanations
8. Do not use syntax like timestamp >= "now-24h"; give a proper timestamp value

Common resource types:
- dataflow_job (for Dataflow jobs)
- gce_instance (for Compute Engine)
- cloud_function (for Cloud Functions)
- gke_cluster (for GKE)
- cloud_sql_database (for Cloud SQL)

Examples:
- For failed Dataflow jobs today: resource.type="dataflow_job" AND severity="ERROR" AND timestamp>="2024-01-01T00:00:00Z"
- For cost information: resource.type="billing_account" OR jsonPayload.cost EXISTS

Generate the query:`

// BuildQueryPrompt renders the query-generation prompt for a question.
func BuildQueryPrompt(question string) string {
	return fmt.Sprintf(queryPromptTemplate, question)
}

// BuildAnalysisPrompt assembles the analysis prompt from the results summary
// and a sample of the returned entries.
func BuildAnalysisPrompt(question string, summary entity.ResultsSummary, samples []entity.LogEntry) string {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		summaryJSON = []byte("{}")
	}
	samplesJSON, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		samplesJSON = []byte("[]")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze these Google Cloud Logging query results and answer the user's question.\n\n")
	fmt.Fprintf(&sb, "User Question: %s\n\n", question)
	fmt.Fprintf(&sb, "Results Summary:\n%s\n\n", summaryJSON)
	fmt.Fprintf(&sb, "Sample Log Entries:\n%s\n\n", samplesJSON)
	sb.WriteString(`Please provide:
1. Direct answer to the user's question
2. Key insights from the logs
3. Any patterns or trends noticed
4. Recommendations if applicable

Keep the response clear and actionable.`)

	return sb.String()
}

// CleanQuery strips whitespace and markdown code fences from model output so
// the filter can be executed as returned.
func CleanQuery(text string) string {
	query := strings.TrimSpace(text)
	if strings.HasPrefix(query, "```") {
		query = strings.TrimPrefix(query, "```")
		// Drop an optional language hint on the fence line.
		if idx := strings.Index(query, "\n"); idx >= 0 && !strings.ContainsAny(query[:idx], "=<>()\"") {
			query = query[idx+1:]
		}
		query = strings.TrimSuffix(strings.TrimSpace(query), "```")
	}
	return strings.TrimSpace(query)
}
