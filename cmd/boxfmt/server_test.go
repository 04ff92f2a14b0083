package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string, q url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path+"?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFmtHandler(t *testing.T) {
	s, err := newServer(10)
	require.NoError(t, err)
	h := s.handler()

	q := url.Values{
		"sql":    {"select a, b from t"},
		"n":      {"80"},
		"indent": {"4"},
		"spaces": {"1"},
		"case":   {"lower"},
	}
	rec := get(t, h, "/fmt", q)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "select a, b from t;", rec.Body.String())
	assert.Equal(t, 1, s.cache.Len())

	q.Set("json", "1")
	rec = get(t, h, "/fmt", q)
	var res fmtResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.False(t, res.Error)
	assert.Equal(t, "select a, b from t;", res.Data)
}

func TestFmtHandlerLanguages(t *testing.T) {
	s, err := newServer(10)
	require.NoError(t, err)
	h := s.handler()

	rec := get(t, h, "/fmt", url.Values{"lang": {"json"}, "src": {`{"a": [1, 2]}`}})
	assert.Equal(t, `{"a": [1, 2]}`, rec.Body.String())

	rec = get(t, h, "/fmt", url.Values{"lang": {"yaml"}, "src": {"a: [1, 2]\n"}})
	assert.Equal(t, "{a: [1, 2]}", rec.Body.String())
}

func TestFmtHandlerErrors(t *testing.T) {
	s, err := newServer(10)
	require.NoError(t, err)
	h := s.handler()

	for _, q := range []url.Values{
		{"sql": {"SELEC 1"}},
		{"sql": {"SELECT 1"}, "n": {"wide"}},
		{"sql": {"SELECT 1"}, "n": {"0"}},
		{"sql": {"SELECT 1"}, "n": {"70000"}},
		{"sql": {"SELECT 1"}, "spaces": {"maybe"}},
		{"sql": {"SELECT 1"}, "case": {"shouting"}},
		{"src": {"x"}, "lang": {"cobol"}},
	} {
		q.Set("json", "1")
		rec := get(t, h, "/fmt", q)
		var res fmtResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.True(t, res.Error, "%v", q)
		assert.NotEmpty(t, res.Data)
	}
}

func TestPages(t *testing.T) {
	s, err := newServer(10)
	require.NoError(t, err)
	h := s.handler()
	for _, path := range []string{"/", "/about"} {
		rec := get(t, h, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "boxfmt", path)
	}
}

func TestFormat(t *testing.T) {
	opts, err := optionsFromFlags()
	require.NoError(t, err)
	opts.Pretty.Margin = 80
	got, err := format(opts, "yaml", []string{"a: 1\n", "- b\n"})
	require.NoError(t, err)
	assert.Equal(t, "{a: 1}\n[b]", got)

	_, err = format(opts, "toml", nil)
	assert.Error(t, err)
}
