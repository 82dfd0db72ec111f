// Package report renders the dashboard state as exportable documents: a
// CSV performance report, a plain-text personal report, and a JSON
// backup.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/nhle/zero-hour/internal/metrics"
	"github.com/nhle/zero-hour/internal/model"
)

// Status labels used in reports.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
)

// generatedLayout formats the "Generated:" line.
const generatedLayout = "2006-01-02 15:04:05"

// Row is one item in a report.
type Row struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Report is the flat, presentation-free summary of the state.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Total       int       `json:"totalTargets"`
	Completed   int       `json:"completedTargets"`
	SuccessRate int       `json:"successRate"`
	Rows        []Row     `json:"targets"`
}

// Build derives a Report from st.
func Build(st model.AppState, generatedAt time.Time) Report {
	sum := metrics.Summarize(st)
	rows := make([]Row, len(st.Items))
	for i, it := range st.Items {
		status := StatusInProgress
		if slices.Contains(st.Completed, it.ID) {
			status = StatusCompleted
		}
		rows[i] = Row{
			Name:     it.Name,
			Date:     it.Date,
			Time:     it.Time,
			Category: it.Category,
			Status:   status,
		}
	}
	return Report{
		GeneratedAt: generatedAt,
		Total:       sum.Total,
		Completed:   sum.Completed,
		SuccessRate: sum.SuccessRate,
		Rows:        rows,
	}
}

// WriteCSV writes the performance report: a short header block followed
// by one CSV row per item.
func WriteCSV(w io.Writer, r Report) error {
	header := fmt.Sprintf(
		"ZERO HOUR - Performance Report\nGenerated: %s\n\nTotal Targets: %d\nCompleted: %d\nSuccess Rate: %d%%\n\n",
		r.GeneratedAt.Format(generatedLayout), r.Total, r.Completed, r.SuccessRate,
	)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"TARGET", "DATE", "TIME", "CATEGORY", "STATUS"}); err != nil {
		return fmt.Errorf("writing report columns: %w", err)
	}
	for _, row := range r.Rows {
		if err := cw.Write([]string{row.Name, row.Date, row.Time, row.Category, row.Status}); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Text renders the personal report used by the goals layout.
func Text(st model.AppState, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("ZERO HOUR - Personal Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(generatedLayout))
	fmt.Fprintf(&b, "Goals Created: %d\n", len(st.Items))
	fmt.Fprintf(&b, "Goals Completed: %d\n\n", len(st.Completed))
	b.WriteString("Goals:\n")
	for _, it := range st.Items {
		fmt.Fprintf(&b, "- %s (%s)\n", it.Name, it.Category)
	}
	return b.String()
}

// Backup is the structured export document.
type Backup struct {
	Version    int              `json:"version"`
	Variant    model.Variant    `json:"variant"`
	UserCode   string           `json:"userCode,omitempty"`
	Items      []model.Item     `json:"items"`
	Completed  []int64          `json:"completed"`
	TeamGoals  []model.TeamGoal `json:"teamGoals,omitempty"`
	Business   string           `json:"currentBusiness"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// NewBackup snapshots st into a Backup.
func NewBackup(st model.AppState, variant model.Variant, exportedAt time.Time) Backup {
	st = st.Clone()
	return Backup{
		Version:    model.SchemaVersion,
		Variant:    variant,
		UserCode:   st.UserCode,
		Items:      st.Items,
		Completed:  st.Completed,
		TeamGoals:  st.TeamGoals,
		Business:   st.CurrentBusiness,
		ExportedAt: exportedAt.UTC(),
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// FileName returns the conventional download name for a report format.
func FileName(format, userCode string) string {
	switch format {
	case "text":
		return "ZERO_HOUR_Report.txt"
	case "json":
		if userCode != "" {
			return "ZERO_HOUR_Backup_" + userCode + ".json"
		}
		return "ZERO_HOUR_Backup.json"
	default:
		return "ZERO_HOUR_Report.csv"
	}
}
