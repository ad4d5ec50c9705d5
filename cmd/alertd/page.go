package main

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

const pageBody = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>alertd</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/css/bootstrap.min.css">
<script type="module" src="%SCRIPT%"></script>
</head>
<body class="container py-4" data-signals='{"preset":"","config":{"dismissible":true},"content":[{"type":"h","text":"Heads up","level":4},{"type":"p","text":"Rendered by alertd."}]}'>
<div class="mb-3">
<button class="btn btn-primary" data-on-click="$preset = ''; @post('/alerts')">Default</button>
%PRESETS%
</div>
<div id="%CONTAINER%" data-on-click="evt.target.closest('[data-dismiss=alert]') &amp;&amp; @delete('/alerts/' + evt.target.closest('.alert').id)"></div>
</body>
</html>`

// indexPage renders the demo page with one button per preset.
// containerID is the id of the element alerts are appended to.
func indexPage(presets []string, containerID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var buttons string
		for _, name := range presets {
			n := html.EscapeString(name)
			buttons += `<button class="btn btn-secondary ml-2" data-on-click="$preset = '` + n + `'; @post('/alerts')">` + n + `</button>` + "\n"
		}
		r := strings.NewReplacer(
			"%SCRIPT%", datastarScript,
			"%PRESETS%", buttons,
			"%CONTAINER%", html.EscapeString(containerID),
		)
		_, err := r.WriteString(w, pageBody)
		return err
	})
}
