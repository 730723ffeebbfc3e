package panel

const detailsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: var(--vscode-font-family, sans-serif); padding: 1rem 2rem; }
table { border-collapse: collapse; }
td, th { text-align: left; padding: .25rem 1rem .25rem 0; }
pre { background: rgba(127,127,127,.12); padding: .75rem; overflow-x: auto; }
.error { color: #c62828; }
.warn { color: #b26a00; }
.ok { color: #2e7d32; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<p class="error">Deployment failed: {{.Error}}</p>{{end}}
<table>
{{if .AppName}}<tr><th>Application</th><td>{{.AppName}}</td></tr>{{end}}
{{if .ApplicationType}}<tr><th>Type</th><td>{{.ApplicationType}}</td></tr>{{end}}
{{if .Namespace}}<tr><th>Namespace</th><td>{{.Namespace}}</td></tr>{{end}}
{{if .URL}}<tr><th>URL</th><td><a href="{{.URL}}">{{.URL}}</a></td></tr>{{end}}
{{with .Analysis}}
<tr><th>Repository</th><td>{{.Repository}}</td></tr>
{{if .Language}}<tr><th>Language</th><td>{{.Language}}</td></tr>{{end}}
<tr><th>Size</th><td>{{formatSize .Size}}</td></tr>
{{end}}
</table>
{{with .Analysis}}
{{if .FileStructure.KeyFiles}}
<h2>Key files</h2>
<ul>{{range .FileStructure.KeyFiles}}<li><code>{{.Path}}</code></li>{{end}}</ul>
{{end}}
{{if .Dependencies.PackageManagers}}
<h2>Dependencies</h2>
<p>{{len .Dependencies.Dependencies}} packages via {{range $i, $pm := .Dependencies.PackageManagers}}{{if $i}}, {{end}}{{$pm}}{{end}}</p>
{{end}}
{{end}}
{{if .Analysis}}
<h2>Readiness</h2>
{{if .Readiness}}<ul class="warn">{{range .Readiness}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="ok">Ready for deployment</p>{{end}}
{{end}}
{{if .Recommendations}}
<h2>Recommendations</h2>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>
{{end}}
{{if .Manifests}}
<h2>Manifests</h2>
<pre><code>{{.Manifests}}</code></pre>
{{end}}
{{if .Dockerfile}}
<h2>Generated Dockerfile</h2>
<pre><code>{{.Dockerfile}}</code></pre>
{{end}}
{{if .Workflow}}
<h2>GitHub Actions workflow</h2>
<pre><code>{{.Workflow}}</code></pre>
{{end}}
{{if .BaseURL}}<p><a href="{{.BaseURL}}/health">Dispatcher health</a></p>{{end}}
</body>
</html>
`

const replyTemplate = `<div class="chat-reply">
<div class="chat-reply-body">{{.Body}}</div>
{{if .Suggestions}}<ul class="chat-reply-suggestions">{{range .Suggestions}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Actions}}<div class="chat-reply-actions">{{range .Actions}}<button type="button" data-action="{{.Action}}">{{.Label}}</button>{{end}}</div>{{end}}
</div>
`
