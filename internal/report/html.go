package report

import (
	"fmt"
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"color": func(t Tier) string { return t.Color() },
	"offset": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; background: #f5f6fa; }
.card { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; margin-bottom: 1.5rem; }
.bg-circle { fill: none; stroke: #eee; stroke-width: 10; }
.progress-circle { fill: none; stroke-width: 10; stroke-dasharray: 314; transform: rotate(-90deg); transform-origin: 50% 50%; }
.salary-table { border-collapse: collapse; width: 100%; background: #fff; }
.salary-table th, .salary-table td { border: 1px solid #ddd; padding: 0.5rem; text-align: left; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<div id="result">
{{- if .Empty }}
<p class="empty">{{ .NoResults }}</p>
{{- else }}
{{- range .Cards }}
<div class="card tier-{{ .Tier }}">
  <h2>{{ .Rank }}. {{ .Role }}</h2>
  <svg width="120" height="120">
    <circle cx="60" cy="60" r="50" class="bg-circle"></circle>
    <circle cx="60" cy="60" r="50" class="progress-circle" style="stroke:{{ color .Tier }};stroke-dashoffset:{{ offset .GaugeOffset }}"></circle>
    <text x="50%" y="50%" text-anchor="middle" dy=".3em">{{ .MatchPercentage }}%</text>
  </svg>
  <h3>Skill Effectiveness</h3>
  <ul>
  {{- range .Skills }}
    <li class="{{ if .Matched }}matched{{ else }}missing{{ end }}">{{ if .Matched }}✔️{{ else }}❌{{ end }} {{ .Skill }} ({{ .Impact }})</li>
  {{- end }}
  </ul>
  <h3>Improvements</h3>
  <ul>{{ range .Improvements }}<li>{{ . }}</li>{{ end }}</ul>
  <h3>Projects</h3>
  <ul>{{ range .Projects }}<li>{{ . }}</li>{{ end }}</ul>
  <p><strong>Career Tip:</strong> {{ .CareerTip }}</p>
</div>
{{- end }}
<div class="salary-section">
  <h2>{{ .SalaryTitle }}</h2>
  <table class="salary-table">
    <tr><th>Role</th><th>Current Salary</th><th>After Skill Upgrade</th></tr>
    {{- range .Salaries }}
    <tr><td>{{ .Role }}</td><td>{{ .Current }}</td><td>{{ .Upgraded }}</td></tr>
    {{- end }}
  </table>
</div>
{{- end }}
</div>
</body>
</html>
`))

type htmlPage struct {
	ViewModel
	SalaryTitle string
	NoResults   string
}

// RenderHTML writes the report as a standalone HTML page.
func RenderHTML(w io.Writer, vm ViewModel) error {
	return htmlTemplate.Execute(w, htmlPage{
		ViewModel:   vm,
		SalaryTitle: SalaryTitle,
		NoResults:   NoResultsMsg,
	})
}
