package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/bin-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"stateClass": func(s string) string {
		switch s {
		case "EMPTY":
			return "empty"
		case "PARTIAL":
			return "partial"
		case "FULL":
			return "full"
		}
		return "unknown"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Bin Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.empty { color: green; font-weight: bold; }
.partial { color: #b8860b; font-weight: bold; }
.full { color: red; font-weight: bold; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Bin Monitor{{if .Config.Location}} — {{.Config.Location}}{{end}}</h1>

<h2>State</h2>
<table>
<tr><th>Fill Level</th><td class="{{stateClass (stateOrUnknown (printf "%s" .State))}}">{{stateOrUnknown (printf "%s" .State)}}</td></tr>
<tr><th>Distance</th><td>{{printf "%.1f" .DistanceCM}} cm</td></tr>
{{if not .LastReading.IsZero}}<tr><th>Last Reading</th><td>{{.LastReading.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>{{end}}
{{if not .LastNotification.IsZero}}<tr><th>Last Alert</th><td>{{.LastNotification.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} — {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Empty</th><td>{{.Counts.Empty}}</td></tr>
<tr><th>Partial</th><td>{{.Counts.Partial}}</td></tr>
<tr><th>Full</th><td>{{.Counts.Full}}</td></tr>
<tr><th>Alerts Sent</th><td>{{.Counts.NotificationsSent}}</td></tr>
<tr><th>Alerts Failed</th><td>{{.Counts.NotificationsFailed}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Interval</th><td>{{.Config.IntervalMs}}ms</td></tr>
<tr><th>Cooldown</th><td>{{.Config.CooldownMs}}ms</td></tr>
<tr><th>Thresholds</th><td>empty &gt; {{.Config.EmptyCM}}cm, full &le; {{.Config.PartialCM}}cm</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
