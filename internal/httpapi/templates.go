package httpapi

import "html/template"

// All pages are rendered from inline fragments; there are no template assets
// on disk.
var pages = template.Must(template.New("pages").Parse(`
{{define "login"}}<!DOCTYPE html>
<html><body style="font-family: Arial; margin: 40px;">
	<h2>Sign in</h2>
	<form action="/send-otp" method="post">
		<p><input type="email" name="email" placeholder="Email" required></p>
		<button type="submit">Send code</button>
	</form>
</body></html>
{{end}}

{{define "code_sent"}}<!DOCTYPE html>
<html><body style="font-family: Arial; margin: 40px;">
	<h3>Code sent to {{.Email}}</h3>
	{{if .Code}}<p><b>Login code (test only): {{.Code}}</b></p>{{end}}
	<form action="/verify-otp" method="post">
		<input type="hidden" name="email" value="{{.Email}}">
		<p><input type="text" name="otp" placeholder="Enter code" required></p>
		<button type="submit">Sign in</button>
	</form>
</body></html>
{{end}}

{{define "invalid_code"}}<h3>Invalid code.</h3>
<p><a href="/login">Back to sign in</a></p>
{{end}}

{{define "app"}}<!DOCTYPE html>
<html><body style="font-family: Arial; margin: 40px;">
	<h2>Welcome, {{.Email}}</h2>
	<p>Searches today: <b>{{.Count}}/{{.Limit}}</b></p>
	<a href="/logout">Logout</a>
	<hr>
	<h3>Upload a file and search for an entry</h3>
	<form action="/search" method="post" enctype="multipart/form-data">
		<p><input type="file" name="file" required></p>
		<p><input type="text" name="query" placeholder="Entry to search" required></p>
		<button type="submit">Search</button>
	</form>
</body></html>
{{end}}

{{define "quota_exceeded"}}<h3>You have reached the daily search limit.</h3>
<p><a href="/app">Back</a></p>
{{end}}

{{define "results"}}<h3>Results for: <b>{{.Query}}</b></h3>
<table border="1">
	<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
	<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
<br><a href="/app">Back</a>
{{end}}

{{define "no_results"}}<h3>No results found for: <b>{{.Query}}</b></h3>
<p><a href="/app">Back</a></p>
{{end}}

{{define "unsupported"}}<h3>Unsupported format. Use CSV or XLSX.</h3>
<p><a href="/app">Back</a></p>
{{end}}

{{define "error"}}<h3>Error: {{.Message}}</h3>
<p><a href="/app">Back</a></p>
{{end}}
`))
