package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/clothesline/internal/status"
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
		case "EXTENDED":
			return "extended"
		case "RETRACTED":
			return "retracted"
		case "RETRACTING", "EXTENDING":
			return "moving"
		}
		return "unknown"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Clothesline</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.extended { color: green; font-weight: bold; }
.retracted { color: #888; font-weight: bold; }
.moving { color: orange; font-weight: bold; }
.unknown { color: orange; }
.raining { color: #06c; font-weight: bold; }
.dry { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Clothesline</h1>

<h2>Line</h2>
<table>
<tr><th>State</th><td class="{{stateClass (stateOrUnknown (printf "%s" .State))}}">{{stateOrUnknown (printf "%s" .State)}}</td></tr>
<tr><th>Rain</th><td class="{{if .Raining}}raining{{else}}dry{{end}}">{{if .Raining}}raining{{else}}dry{{end}}</td></tr>
<tr><th>Dry for</th><td>{{if .Raining}}&mdash;{{else}}{{uptime .DrySince}}{{end}}</td></tr>
<tr><th>Last rain</th><td>{{.LastRain.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Transition Counts</h2>
<table>
<tr><th>Retracts begun</th><td>{{.Counts.RetractsBegun}}</td></tr>
<tr><th>Retracts done</th><td>{{.Counts.RetractsDone}}</td></tr>
<tr><th>Extends begun</th><td>{{.Counts.ExtendsBegun}}</td></tr>
<tr><th>Extends done</th><td>{{.Counts.ExtendsDone}}</td></tr>
<tr><th>Rain overrides</th><td>{{.Counts.RainOverrides}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Motor run</th><td>{{.Config.MotorRunMs}}ms</td></tr>
<tr><th>Dry delay</th><td>{{.Config.DryDelayMs}}ms</td></tr>
<tr><th>Speed</th><td>{{.Config.SpeedPercent}}%</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime()/DrySince() methods but the template wants
	// plain Duration fields.
	data := struct {
		status.Snapshot
		Uptime   time.Duration
		DrySince time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		DrySince: snap.DrySince(),
	}
	indexTmpl.Execute(w, data)
}
