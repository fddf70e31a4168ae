package report

import (
	"html/template"
	"io"
	"strings"
	"time"

	"bugbounty-tracker/internal/models"
)

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"upper": strings.ToUpper,
	"ts":    func(t time.Time) string { return t.Format(timeLayout) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Bug Bounty Report - {{ .Target.Target }}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1, h2 { color: #333; }
        .target-info { background: #f5f5f5; padding: 15px; border-radius: 5px; }
        .findings { margin: 20px 0; white-space: pre-wrap; }
        tr.critical td { border-left: 4px solid #c92a2a; }
        tr.high td { border-left: 4px solid #ff6b6b; }
        tr.medium td { border-left: 4px solid #ffa94d; }
        tr.low td { border-left: 4px solid #74c0fc; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { text-align: left; padding: 10px; border-bottom: 1px solid #ddd; }
        th { background: #333; color: white; }
    </style>
</head>
<body>
    <h1>Bug Bounty Target Report</h1>

    <div class="target-info">
        <p><strong>Target:</strong> {{ .Target.Target }}</p>
        <p><strong>Target Type:</strong> {{ upper (printf "%s" .Target.TargetType) }}</p>
        <p><strong>Project:</strong> {{ .Target.ProjectName }}</p>
        <p><strong>Status:</strong> {{ .Target.Status }}</p>
        <p><strong>Progress:</strong> {{ printf "%.2f" .Target.Progress }}%</p>
        <p><strong>Generated:</strong> {{ ts .Now }}</p>
    </div>

    <h2>Aggregated Findings</h2>
    <div class="findings">{{ if .Notes }}{{ .Notes }}{{ else }}No findings recorded.{{ end }}</div>

    <h2>Findings History</h2>
    <table>
        <thead>
            <tr>
                <th>Date</th>
                <th>Item</th>
                <th>Category</th>
                <th>Severity</th>
                <th>Type</th>
                <th>Notes</th>
            </tr>
        </thead>
        <tbody>
            {{ range .History }}
            <tr class="{{ .Severity }}">
                <td>{{ ts .CreatedAt }}</td>
                <td>{{ .ChecklistTitle }}</td>
                <td>{{ .CategoryName }}</td>
                <td><strong>{{ upper (printf "%s" .Severity) }}</strong></td>
                <td>{{ .ChangeType }}</td>
                <td>{{ if .NewNotes }}{{ .NewNotes }}{{ else }}{{ .OldNotes }}{{ end }}</td>
            </tr>
            {{ end }}
        </tbody>
    </table>
</body>
</html>
`))

func renderHTML(w io.Writer, target *models.TargetWithProgress, notesBlob string, history []models.HistoryRow, now time.Time) error {
	return htmlReport.Execute(w, map[string]any{
		"Target":  target,
		"Notes":   notesBlob,
		"History": history,
		"Now":     now,
	})
}
