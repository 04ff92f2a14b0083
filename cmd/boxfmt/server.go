package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/acme/autocert"

	"github.com/mjibson/boxfmt"
)

type server struct {
	cache *lru.Cache[string, fmtResponse]
	index *template.Template
	about *template.Template
}

func newServer(cacheSize int) (*server, error) {
	cache, err := lru.New[string, fmtResponse](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "result cache")
	}
	base := template.Must(template.New("base").Parse(Base))
	return &server{
		cache: cache,
		index: template.Must(template.Must(base.Clone()).Parse(Index)),
		about: template.Must(template.Must(base.Clone()).Parse(About)),
	}, nil
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", page(s.index))
	mux.HandleFunc("/about", page(s.about))
	mux.HandleFunc("/fmt", wrap(s.Fmt))
	return mux
}

func page(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := t.Execute(w, boxfmt.CaseModes()); err != nil {
			fmt.Println(err)
			http.Error(w, err.Error(), 500)
		}
	}
}

func serveHTTP(spec Specification) {
	fmt.Printf("SPEC: %#v\n", spec)
	s, err := newServer(spec.CacheSize)
	if err != nil {
		log.Fatal(err)
	}
	srv := &http.Server{
		Addr:           spec.Addr,
		Handler:        s.handler(),
		MaxHeaderBytes: (1 << 10) * 20, // 20KB
	}

	if len(spec.Autocert) > 0 {
		m := autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(spec.Autocert...),
			Cache:      autocert.DirCache(spec.DirCache),
		}
		tlsConfig := &tls.Config{GetCertificate: m.GetCertificate}
		go func() {
			log.Fatal(http.ListenAndServe(spec.Redir, m.HTTPHandler(nil)))
		}()
		srv.TLSConfig = tlsConfig
		go func() {
			log.Fatal(srv.ListenAndServeTLS("", ""))
		}()
	} else {
		go func() {
			fmt.Printf("HTTP listen on: http://%s/\n", spec.Addr)
			log.Fatal(srv.ListenAndServe())
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	sig := <-c
	fmt.Println("closing server: got signal", sig)
	srv.Close()
	fmt.Println("closed server")
}

func wrap(f func(http.ResponseWriter, *http.Request) fmtResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := f(w, r)
		if r.FormValue("json") == "" {
			w.Header().Add("Content-Type", "text/plain")
			if res.Error {
				w.WriteHeader(http.StatusBadRequest)
			}
			w.Write([]byte(res.Data))
		} else {
			w.Header().Add("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(res); err != nil {
				log.Print(err)
			}
		}
	}
}

type fmtResponse struct {
	Data  string
	Error bool
}

func (s *server) Fmt(w http.ResponseWriter, r *http.Request) fmtResponse {
	key := r.URL.RawQuery
	if hit, ok := s.cache.Get(key); ok {
		return hit
	}

	res, err := fmtRequest(r)
	response := fmtResponse{
		Data:  res,
		Error: err != nil,
	}
	if err != nil {
		response.Data = err.Error()
	}
	s.cache.Add(key, response)
	return response
}

func formInt(r *http.Request, name string, def int) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	return n, errors.Wrap(err, name)
}

func formBool(r *http.Request, name string) (bool, error) {
	v := r.FormValue(name)
	if v == "" {
		return false, nil
	}
	b, err := boxfmt.ParseBool(v)
	return b, errors.Wrap(err, name)
}

func fmtRequest(r *http.Request) (string, error) {
	src := r.FormValue("sql")
	if src == "" {
		src = r.FormValue("src")
	}
	lang := r.FormValue("lang")
	if lang == "" {
		lang = "sql"
	}
	trimmed := strings.Join(strings.Fields(src), " ")
	if len(trimmed) > 100 {
		trimmed = fmt.Sprintf("%s...", trimmed[:100])
	}

	opts := boxfmt.DefaultOptions()
	n, err := formInt(r, "n", opts.Pretty.Margin)
	if err != nil {
		return "", err
	}
	log.Printf("fmt (%s, len: %d, n: %d): %s", lang, len(src), n, trimmed)
	tabWidth, err := formInt(r, "indent", opts.Pretty.IndentUnit)
	if err != nil {
		return "", err
	}
	expanded, err := formBool(r, "expanded")
	if err != nil {
		return "", err
	}
	spaces, err := formBool(r, "spaces")
	if err != nil {
		return "", err
	}

	opts.Pretty.Margin = n
	opts.Pretty.IndentUnit = tabWidth
	opts.Pretty.UseTabs = !spaces
	if err := opts.Pretty.Validate(); err != nil {
		return "", err
	}
	opts.Expanded = expanded
	if c := r.FormValue("case"); c != "" {
		if opts.Case, err = boxfmt.CaseMode(c); err != nil {
			return "", err
		}
	}
	return format(opts, lang, []string{src})
}

const (
	Base = `<!DOCTYPE html>
<html>
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
<title>boxfmt</title>
<style>
:root {
  --primary: #6200ee;
  --background: #ffffff;
  --on-background: #000000;
  --dp01: #f2f2f2;
}
@media (prefers-color-scheme: dark) {
  :root {
    --primary: #bb86fc;
    --background: #121212;
    --on-background: #ffffff;
    --dp01: #1e1e1e;
  }
}
body {
  font-family: sans-serif;
  background-color: var(--background);
  color: var(--on-background);
  max-width: 60em;
  margin: auto;
  padding: 0 1em;
}
a { color: var(--primary); }
textarea, pre {
  background-color: var(--dp01);
  color: var(--on-background);
  font-family: monospace;
}
</style>
</head>
<body>
{{block "content" .}}{{end}}
</body>
</html>`

	About = `{{define "content"}}
<h1>about</h1>
<p>
boxfmt formats SQL, JSON and YAML within a target line width.
Groups of tokens are laid out flat when they fit and broken across lines when they do not,
deciding as it reads so that arbitrarily long inputs take bounded memory.
</p>

<h2>Usage</h2>

<p>Paste statements in the box. The slider sets the target line width.
Comments between SQL statements are kept; runs of blank lines are collapsed.</p>

<h3>compact:</h3>
<pre>
SELECT a, b,
    c
FROM t
WHERE c
    AND b
</pre>

<h3>expanded:</h3>
<pre>
SELECT
    a,
    b,
    c
FROM t
WHERE c
    AND b
</pre>

<hr>
<a href="/">index</a>
{{end}}`

	Index = `{{define "content"}}
<h1>boxfmt</h1>
<p>Type some SQL, JSON or YAML. Move the slider to set output width.</p>

<form name="theform" method="get" action="/fmt">
<div style="display: flex; flex-wrap: wrap">
	<div style="flex: 1; margin-right: 4px">
		<textarea id="src" name="src" style="box-sizing: border-box; width: 100%; height: 200px" onInput="range()"></textarea>
		<input type="range" min="1" max="200" step="1" name="n" value="60" onInput="range()" id="n" style="width: 100%">
	</div>
	<div style="width: 150px">
		<h4 style="margin: 0">options:</h4>
		<select name="lang" id="lang" onChange="range()">
			<option>sql</option>
			<option>json</option>
			<option>yaml</option>
		</select>
		<br><select name="case" id="case" onChange="range()">
		{{range .}}<option{{if eq . "upper"}} selected{{end}}>{{.}}</option>{{end}}
		</select>
		<br><label for="indent">tab width</label>
		<input type="number" min="1" max="16" step="1" name="indent" value="4" onInput="range()" id="indent">
		<br><input type="checkbox" onChange="range()" name="spaces" id="spaces"><label for="spaces">use spaces</label>
		<br><input type="checkbox" onChange="range()" name="expanded" id="expanded"><label for="expanded">expanded</label>
	</div>
</div>
target line width: <span id="nval"></span>
<br><input type="submit" id="submitButton">
</form>

<pre id="fmt" style="padding: 5px 0; overflow-x: auto"></pre>

<a href="/about">about</a>
<script>
document.getElementById('submitButton').style.display = 'none';
const el = id => document.getElementById(id);
function range() {
	const q = new URLSearchParams({
		json: 1,
		n: el('n').value,
		indent: el('indent').value,
		lang: el('lang').value,
		case: el('case').value,
		spaces: el('spaces').checked ? 1 : 0,
		expanded: el('expanded').checked ? 1 : 0,
		src: el('src').value,
	});
	el('nval').innerText = el('n').value;
	el('fmt').style['tab-size'] = el('indent').value;
	fetch('/fmt?' + q).then(resp => resp.json()).then(data => {
		el('fmt').innerText = data.Data;
	}, console.log);
}
range();
</script>
{{end}}`
)
