package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
	"github.com/lingyuan001/rotating-magnetic-field/internal/status"
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
	"countdown": func(m float64) string {
		if m == logic.NoCountdown {
			return "none"
		}
		return fmt.Sprintf("%.1f min", m)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Field Rotator</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Field Rotator</h1>

<h2>Rotation</h2>
<table>
<tr><th>Throttle</th><td>{{printf "%.3f" .Throttle}}</td></tr>
<tr><th>Target RPM</th><td>{{if eq .TargetRPM 0.0}}open loop{{else}}{{printf "%.2f" .TargetRPM}}{{end}}</td></tr>
<tr><th>Estimated RPM</th><td>{{printf "%.2f" .EstimatedRPM}}</td></tr>
<tr><th>Field Y / total (uT)</th><td>{{printf "%.0f" .MagY}} / {{printf "%.0f" .MagTotal}}</td></tr>
<tr><th>Stop countdown</th><td>{{countdown .StopMinutes}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Console</th><td>{{.Config.Device}} @ {{.Config.Baud}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Crossings accepted</th><td>{{.Counts.CrossingsAccepted}}</td></tr>
<tr><th>Crossings rejected</th><td>{{.Counts.CrossingsRejected}}</td></tr>
<tr><th>Corrections</th><td>{{.Counts.Corrections}}</td></tr>
<tr><th>Stops fired</th><td>{{.Counts.StopsFired}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
<tr><th>Servo pin</th><td>BCM {{.Config.ServoPin}}</td></tr>
<tr><th>LED pin</th><td>BCM {{.Config.LEDPin}}</td></tr>
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
