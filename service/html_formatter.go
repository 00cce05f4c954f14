package service

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
)

// HTMLFormatterImpl provides common HTML formatting functionality with Lighthouse-style scoring
type HTMLFormatterImpl struct{}

func NewHTMLFormatter() *HTMLFormatterImpl {
	return &HTMLFormatterImpl{}
}

type ScoreData struct {
	Score    int    `json:"score"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

type OverallScoreData struct {
	Score       int         `json:"score"`
	Color       string      `json:"color"`
	Status      string      `json:"status"`
	Breakdown   []ScoreData `json:"breakdown"`
	ProjectName string      `json:"project_name"`
	Timestamp   string      `json:"timestamp"`
}

// DSMHTMLData is the template payload for the `dsm` subcommand's HTML report.
type DSMHTMLData struct {
	OverallScore  OverallScoreData
	Response      *domain.DSMResponse
	ScoreDetails  ScoreData
	TotalHeaders  int
	TotalDeps     int
	Sparsity      float64
	AvgDeps       float64
	Health        domain.HealthBucket
	HealthColor   string
	CyclesDisplay []domain.Cycle
	HiddenCycles  int
	TopCoupled    []dsmTopRow
	HasCycles     bool
}

type dsmTopRow struct {
	Header    string
	FanIn     int
	FanOut    int
	Coupling  int
	Stability float64
}

func scoreColorStatus(score int) (string, string) {
	switch {
	case score >= 90:
		return "#0CCE6B", "pass"
	case score >= 50:
		return "#FFA500", "average"
	default:
		return "#FF5722", "fail"
	}
}

// CalculateDSMScore derives a Lighthouse-style score from the matrix's
// health bucket, cycle count, and god-object count.
func (f *HTMLFormatterImpl) CalculateDSMScore(results domain.DSMAnalysisResults) ScoreData {
	if results.Stats.TotalHeaders == 0 {
		return ScoreData{Score: 100, Label: "No Headers Analyzed", Color: "#0CCE6B", Status: "pass", Category: "dsm"}
	}

	score := 100
	switch results.Stats.Health {
	case domain.HealthExcellent:
		score = 95
	case domain.HealthGood:
		score = 80
	case domain.HealthFair:
		score = 60
	case domain.HealthPoor:
		score = 35
	}

	score -= len(results.Cycles) * 5
	godObjects := 0
	for _, adv := range results.Advanced {
		if adv.IsGodObject {
			godObjects++
		}
	}
	score -= godObjects * 3
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	color, status := scoreColorStatus(score)
	label := fmt.Sprintf("%s, %d cycle(s)", results.Stats.Health, len(results.Cycles))
	return ScoreData{Score: score, Label: label, Color: color, Status: status, Category: "dsm"}
}

// CalculateOverallScore calculates weighted average of all scores
func (f *HTMLFormatterImpl) CalculateOverallScore(scores []ScoreData, projectName string) OverallScoreData {
	if len(scores) == 0 {
		return OverallScoreData{
			Score:       100,
			Color:       "#0CCE6B",
			Status:      "pass",
			Breakdown:   []ScoreData{},
			ProjectName: projectName,
			Timestamp:   time.Now().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	var sum int
	for _, s := range scores {
		sum += s.Score
	}
	overallScore := sum / len(scores)

	color, status := scoreColorStatus(overallScore)

	return OverallScoreData{
		Score:       overallScore,
		Color:       color,
		Status:      status,
		Breakdown:   scores,
		ProjectName: projectName,
		Timestamp:   time.Now().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FormatDSMAsHTML renders a DSMResponse as a self-contained Lighthouse-style
// HTML report.
func (f *HTMLFormatterImpl) FormatDSMAsHTML(resp *domain.DSMResponse, projectName string) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("response cannot be nil")
	}
	results := resp.Results
	scoreDetails := f.CalculateDSMScore(results)
	overall := f.CalculateOverallScore([]ScoreData{scoreDetails}, projectName)

	const maxCycles = 100
	const maxTopRows = 20

	cycles := results.Cycles
	hiddenCycles := 0
	if len(cycles) > maxCycles {
		hiddenCycles = len(cycles) - maxCycles
		cycles = cycles[:maxCycles]
	}

	top := topByCoupling(results, maxTopRows)
	rows := make([]dsmTopRow, 0, len(top))
	for _, h := range top {
		m := results.Metrics[h]
		rows = append(rows, dsmTopRow{Header: h, FanIn: m.FanIn, FanOut: m.FanOut, Coupling: m.Coupling, Stability: m.Stability})
	}

	data := DSMHTMLData{
		OverallScore:  overall,
		Response:      resp,
		ScoreDetails:  scoreDetails,
		TotalHeaders:  results.Stats.TotalHeaders,
		TotalDeps:     results.Stats.TotalActualDeps,
		Sparsity:      results.Stats.Sparsity,
		AvgDeps:       results.Stats.AvgDeps,
		Health:        results.Stats.Health,
		HealthColor:   results.Stats.HealthColor,
		CyclesDisplay: cycles,
		HiddenCycles:  hiddenCycles,
		TopCoupled:    rows,
		HasCycles:     results.HasCycles,
	}
	return f.renderTemplateString(f.getDSMHTMLTemplate(), data)
}

// getDSMHTMLTemplate returns the HTML template for the `dsm` subcommand's report.
func (f *HTMLFormatterImpl) getDSMHTMLTemplate() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>buildcheck DSM Report - {{.OverallScore.ProjectName}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #2c3e50 0%, #4a6279 100%);
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { background: white; border-radius: 10px; padding: 30px; margin-bottom: 20px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); }
        .header h1 { color: #2c3e50; margin-bottom: 10px; }
        .score-badge { display:inline-block; padding:10px 20px; border-radius:50px; font-size:24px; font-weight:bold; margin:10px 0; }
        .metric-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin: 20px 0; }
        .metric-card { background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; }
        .metric-value { font-size: 32px; font-weight: bold; color: #2c3e50; }
        .metric-label { color: #666; margin-top: 5px; }
        .section { background:white; border-radius:10px; box-shadow:0 10px 30px rgba(0,0,0,0.1); padding: 20px; margin-bottom: 20px; }
        .table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .table th, .table td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        .table th { background: #f8f9fa; font-weight: 600; }
        .ok { color: #4caf50; }
        .warn { color: #FF5722; }
        .muted { color: #666; }
    </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Dependency Structure Matrix</h1>
      <div>Project: <strong>{{.OverallScore.ProjectName}}</strong></div>
      <div class="muted">Generated on {{.OverallScore.Timestamp}}</div>
      <span class="score-badge" style="background: {{.OverallScore.Color}}; color: white;">{{.OverallScore.Score}}</span>
      <div class="muted">{{.ScoreDetails.Label}}</div>
    </div>

    <div class="section">
      <h2>Summary</h2>
      <div class="metric-grid">
        <div class="metric-card"><div class="metric-value">{{.TotalHeaders}}</div><div class="metric-label">Headers</div></div>
        <div class="metric-card"><div class="metric-value">{{.TotalDeps}}</div><div class="metric-label">Dependencies</div></div>
        <div class="metric-card"><div class="metric-value">{{printf "%.1f%%" (mul100 .Sparsity)}}</div><div class="metric-label">Sparsity</div></div>
        <div class="metric-card" style="color: {{.HealthColor}};"><div class="metric-value">{{.Health}}</div><div class="metric-label">Health</div></div>
      </div>
    </div>

    <div class="section">
      <h2>Cycles</h2>
      {{if .CyclesDisplay}}
        <ol>
          {{range .CyclesDisplay}}
            <li>{{range $i, $m := .Members}}{{if $i}} &rarr; {{end}}{{$m}}{{end}}</li>
          {{end}}
        </ol>
        {{if gt .HiddenCycles 0}}<div class="muted">+{{.HiddenCycles}} more cycles not shown</div>{{end}}
      {{else}}
        <div class="ok">No cycles detected</div>
      {{end}}
    </div>

    <div class="section">
      <h2>Most Coupled Headers</h2>
      <table class="table">
        <thead><tr><th>Header</th><th>Fan-In</th><th>Fan-Out</th><th>Coupling</th><th>Stability</th></tr></thead>
        <tbody>
          {{range .TopCoupled}}
            <tr><td>{{.Header}}</td><td>{{.FanIn}}</td><td>{{.FanOut}}</td><td>{{.Coupling}}</td><td>{{printf "%.2f" .Stability}}</td></tr>
          {{end}}
        </tbody>
      </table>
    </div>
  </div>
</body>
</html>`
}

// renderTemplateString renders a provided template string with shared funcMap
func (f *HTMLFormatterImpl) renderTemplateString(tmplStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"title": func(s string) string {
			if len(s) == 0 {
				return s
			}
			return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
		},
		"mul100": func(f float64) float64 {
			return f * 100
		},
	}
	tmpl, err := template.New("html_report").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML template: %w", err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}
