package handlers

import (
	"html"
	"net/http"
	"strings"
)

// NotFoundHandler serves a 404 page, or a JSON error for API routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		scriviJSON(w, http.StatusNotFound, map[string]string{"error": "endpoint non trovato"})
		return
	}
	scriviHTML(w, http.StatusNotFound, "Pagina non trovata",
		errorBody("404", "Pagina non trovata", "La pagina che cerchi non esiste o è stata spostata."))
}

// MethodNotAllowedHandler answers requests with an unsupported method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	scriviJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "metodo non consentito"})
}

func errorBody(code, title, message string) string {
	return `<div class="error-wrap">
<div class="error-code">` + code + `</div>
<h1>` + html.EscapeString(title) + `</h1>
<p>` + html.EscapeString(message) + `</p>
<a href="/guide" class="btn-home">Vai alle guide</a>
</div>`
}

func scriviHTML(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(pageHTML(title, body)))
}

// pageHTML wraps body in the shared layout. body must already be escaped.
func pageHTML(title, body string) string {
	return `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + html.EscapeString(title) + ` — Stipendio Netto</title>
<meta name="theme-color" content="#164E63">
<style>
:root{--ink:#1C1C1F;--ink-75:#404045;--ink-50:#76767C;--ink-15:#D4D4D7;--warm-white:#FAFAF7;--brand:#164E63;--brand-mid:#1F6F8B;--terra:#C0522E;--radius:5px}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:var(--warm-white);color:var(--ink);min-height:100vh;display:flex;flex-direction:column;font-size:15px;line-height:1.65}
a{color:var(--brand-mid);text-decoration:none}a:hover{text-decoration:underline}
.header{background:var(--brand);color:#fff;height:54px;display:flex;align-items:center;padding:0 24px;font-weight:600}
.header a{color:#fff}
main{flex:1;max-width:760px;width:100%;margin:0 auto;padding:32px 24px}
main h1{font-size:1.8rem;margin-bottom:12px}
main h2{font-size:1.25rem;margin:24px 0 8px}
main p,main ul{margin-bottom:12px}main ul{padding-left:22px}
main table{border-collapse:collapse;margin:12px 0}main td,main th{border:1px solid var(--ink-15);padding:4px 10px}
main pre{background:#fff;border:1px solid var(--ink-15);padding:10px;border-radius:var(--radius);overflow-x:auto}
.lista li{margin-bottom:10px}.lista small{display:block;color:var(--ink-50)}
.error-wrap{text-align:center;padding:40px 0}
.error-code{font-size:6rem;color:var(--terra);line-height:1;margin-bottom:8px;opacity:.85}
.btn-home{display:inline-block;margin-top:16px;padding:10px 24px;background:var(--brand);color:#fff;border-radius:var(--radius);font-weight:600}
footer{border-top:1px solid var(--ink-15);padding:20px 0;text-align:center;color:var(--ink-50);font-size:.82rem}
</style>
</head>
<body>
<header class="header"><a href="/guide">Stipendio Netto</a></header>
<main>
` + body + `
</main>
<footer>Stime orientative su parametri fiscali semplificati.</footer>
</body>
</html>`
}
