package health

import (
	"bytes"
	"fmt"
	"html/template"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"pill": func(status string) string {
		if status == "connected" {
			return "ok"
		}
		return "err"
	},
	"ping": func(ms *int64) string {
		if ms == nil {
			return "--"
		}
		return fmt.Sprintf("%d ms", *ms)
	},
	"field": func(v interface{}, key string) string {
		m, ok := v.(map[string]interface{})
		if !ok {
			return "-"
		}
		s, ok := m[key].(string)
		if !ok || s == "" {
			return "-"
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta http-equiv="refresh" content="15">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>NearVisit · API Status</title>
  <style>
    body { font-family: system-ui, sans-serif; background: #f8f9fa; color: #173e35; margin: 0; padding: 40px 20px; }
    main { max-width: 960px; margin: 0 auto; }
    h1 { font-size: 40px; margin: 0 0 8px; }
    h1.issue { color: #b91c1c; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; margin-top: 24px; }
    .card { background: #fff; border-radius: 16px; padding: 24px; box-shadow: 0 10px 40px -20px rgba(0,0,0,.2); }
    .label { text-transform: uppercase; font-size: 11px; letter-spacing: 2px; color: #94a3b8; margin-bottom: 16px; }
    .big { font-size: 32px; font-weight: 800; margin-bottom: 8px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; }
    .ok { color: #007473; } .err { color: #ef4444; }
    footer { margin-top: 20px; font-family: monospace; font-size: 13px; }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body>
<main>
  {{if eq .Status "ok"}}<h1>All Systems Operational</h1>{{else}}<h1 class="issue">System Issues Detected</h1>{{end}}
  <p>{{.Service}} · <a href="/health/json">json</a> · <a href="/health/errors">errors</a></p>
  <div class="grid">
    <section class="card">
      <div class="label">Traffic</div>
      <div class="big">{{.Traffic.TotalRequests}}</div>
      <div class="row"><span>Successful</span><span class="ok">{{.Traffic.SuccessCount}}</span></div>
      <div class="row"><span>Failed</span><span class="err">{{.Traffic.FailedCount}}</span></div>
      <div class="row"><span>Success rate</span><span>{{.Traffic.SuccessRate}}%</span></div>
      <div class="row"><span>Avg latency</span><span>{{.Traffic.AvgResponseTime}} ms</span></div>
    </section>
    <section class="card">
      <div class="label">Runtime</div>
      <div class="big">{{.Runtime.UptimeSeconds}}s</div>
      <div class="row"><span>Heap used</span><span>{{.Runtime.Memory.HeapUsedMB}} MB</span></div>
      <div class="row"><span>Goroutines</span><span>{{.Runtime.Goroutines}}</span></div>
      <div class="row"><span>Platform</span><span>{{.Runtime.Platform}}</span></div>
      <div class="row"><span>Go</span><span>{{.Runtime.GoVersion}}</span></div>
    </section>
    <section class="card">
      <div class="label">Dependencies</div>
      {{range $name, $dep := .Dependencies}}
      <div class="row"><span>{{$name}}</span><span class="{{pill $dep.Status}}">{{$dep.Status}} · {{ping $dep.PingMs}}</span></div>
      {{end}}
    </section>
  </div>
  <footer>last request: {{field .Traffic.LastRequest "method"}} {{field .Traffic.LastRequest "path"}} {{field .Traffic.LastRequest "ip"}}</footer>
</main>
</body>
</html>`))

// RenderDashboardHTML renders the status page served at GET /health.
func RenderDashboardHTML(health CollectResult) (string, error) {
	var buf bytes.Buffer
	err := dashboardTmpl.Execute(&buf, struct {
		CollectResult
		Service string
	}{health, ServiceName})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
