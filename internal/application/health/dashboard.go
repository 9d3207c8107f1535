package health

import (
	"fmt"
)

// RenderDashboardHTML returns the HTML for GET / — a small status page with
// the same figures as /health/json.
func RenderDashboardHTML(health CollectResult) string {
	depRows := ""
	for name, dep := range health.Dependencies {
		ping := "-"
		if dep.PingMs != nil {
			ping = fmt.Sprintf("%v ms", dep.PingMs)
		}
		depRows += fmt.Sprintf(`<tr><td>%s</td><td class="%s">%s</td><td>%s</td></tr>`,
			name, dep.Status, dep.Status, ping)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Trykey · Dashboard API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --accent: #f9733e; --dark: #282828; --bg: #f8f9fa; --muted: #64748b; }
    body { background: var(--bg); color: var(--dark); font-family: system-ui, sans-serif; margin: 0; padding: 3rem; }
    h1 { font-size: 1.4rem; } h1 span { color: var(--accent); }
    table { border-collapse: collapse; margin-top: 1rem; }
    td, th { border: 1px solid #e2e8f0; padding: .4rem .8rem; text-align: left; }
    .connected, .reachable { color: #16a34a; font-weight: 600; }
    .disconnected, .unreachable, .error { color: #dc2626; font-weight: 600; }
    .muted { color: var(--muted); font-size: .85rem; }
  </style>
</head>
<body>
  <h1>Trykey Dashboard API · <span>%s</span></h1>
  <p class="muted">uptime %ds · %s · %s</p>
  <table>
    <tr><th>Requests</th><th>Success</th><th>Failed</th><th>Success rate</th><th>Avg response</th></tr>
    <tr><td>%d</td><td>%d</td><td>%d</td><td>%s%%</td><td>%v ms</td></tr>
  </table>
  <table>
    <tr><th>Dependency</th><th>Status</th><th>Ping</th></tr>
    %s
  </table>
  <p class="muted"><a href="/health/json">/health/json</a> · <a href="/health/errors">/health/errors</a></p>
</body>
</html>`,
		health.Status,
		health.Runtime.UptimeSeconds, health.Runtime.Platform, health.Runtime.GoVersion,
		health.Traffic.TotalRequests, health.Traffic.SuccessCount, health.Traffic.FailedCount,
		health.Traffic.SuccessRate, health.Traffic.AvgResponseTime,
		depRows)
}
