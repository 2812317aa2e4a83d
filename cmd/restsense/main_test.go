package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restsense/httpclient"
	"github.com/kbukum/restsense/httpclient/rest"
	"github.com/kbukum/restsense/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGet_Formats(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"id":1,"name":"a"}`)

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"name": "a"`},
		{"yaml", "name: a"},
		{"raw", `{"id":1,"name":"a"}`},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			out, _, err := execute(t, "get", "/items/1", "--base-url", srv.URL, "-o", tc.format)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("output = %q, want it to contain %q", out, tc.want)
			}
		})
	}
}

func TestPost_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/json; charset=utf-8" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("X-Trace") != "1" || r.URL.Query().Get("page") != "2" {
			t.Errorf("headers/query not sent: %v %v", r.Header, r.URL.Query())
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var in map[string]any
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"received": in["name"]})
	}))
	defer srv.Close()

	out, _, err := execute(t, "post", "/users", "--base-url", srv.URL,
		"-d", "name: bob", "-H", "X-Trace=1", "-q", "page=2", "--bearer", "tok")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"received": "bob"`) {
		t.Errorf("output = %q", out)
	}
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, _, err := execute(t, "delete", "/users/1", "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("output = %q, want nothing", out)
	}
}

func TestGet_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"Not Found","status":404,"detail":"no user 7"}`)
	}))
	defer srv.Close()

	_, errOut, err := execute(t, "get", "/users/7", "--base-url", srv.URL)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !httpclient.IsNotFound(err) {
		t.Errorf("expected a not found error, got %v", err)
	}
	if !strings.Contains(errOut, "no user 7") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestGet_ClientLogsThroughRegisteredLogger(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"id":7}`)

	_, errOut, err := execute(t, "get", "/users/7", "--base-url", srv.URL, "--log-level", "debug")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(errOut, "http request completed") {
		t.Errorf("stderr = %q, want request log", errOut)
	}
	if !strings.Contains(errOut, "httpclient") {
		t.Errorf("stderr = %q, want httpclient component", errOut)
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"go_version"`) {
		t.Errorf("output = %q", out)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	if _, _, err := execute(t, "version", "-o", "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestInvalidBaseURL(t *testing.T) {
	if _, _, err := execute(t, "get", "/x", "--base-url", "::bad"); err == nil {
		t.Fatal("expected a config validation error")
	}
}

func TestReadBody(t *testing.T) {
	v, err := readBody(`{"a": 1, "b": [true]}`)
	if err != nil {
		t.Fatalf("readBody() error = %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["a"] != 1 {
		t.Errorf("readBody() = %#v", v)
	}

	if _, err := readBody("@/nonexistent/body.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func demoEngine(t *testing.T, upstream *rest.Client) *gin.Engine {
	t.Helper()
	e := gin.New()
	registerDemoRoutes(e, upstream)
	return e
}

func request(e http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	e.ServeHTTP(w, req)
	return w
}

func TestDemo_Status(t *testing.T) {
	e := demoEngine(t, nil)

	tests := []struct {
		path       string
		want       int
		retryAfter bool
		problem    bool
	}{
		{"/status/503", http.StatusServiceUnavailable, true, true},
		{"/status/429", http.StatusTooManyRequests, true, true},
		{"/status/451", http.StatusUnavailableForLegalReasons, false, true},
		{"/status/201", http.StatusCreated, false, false},
		{"/status/abc", http.StatusBadRequest, false, true},
		{"/status/700", http.StatusBadRequest, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := request(e, http.MethodGet, tc.path, "")
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if got := w.Header().Get("Retry-After") != ""; got != tc.retryAfter {
				t.Errorf("Retry-After present = %v", got)
			}
			if got := strings.HasPrefix(w.Header().Get("Content-Type"), "application/problem+json"); got != tc.problem {
				t.Errorf("problem content type = %v (%q)", got, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestDemo_Echo(t *testing.T) {
	e := demoEngine(t, nil)

	w := request(e, http.MethodPost, "/echo", `{"name":"ann","tags":["x"]}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"ann"`) {
		t.Errorf("valid echo: %d %s", w.Code, w.Body.String())
	}

	w = request(e, http.MethodPost, "/echo", `{"email":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid echo status = %d", w.Code)
	}
	var p struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Errors["name"]) == 0 || len(p.Errors["email"]) == 0 {
		t.Errorf("errors = %v", p.Errors)
	}

	w = request(e, http.MethodPost, "/echo", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed echo status = %d", w.Code)
	}
}

func TestDemo_Relay(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items":
			if r.URL.Query().Get("limit") != "5" {
				t.Errorf("query = %v", r.URL.Query())
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[{"id":1}]`)
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstreamSrv.Close()

	upstream, err := rest.New(httpclient.Config{BaseURL: upstreamSrv.URL}, httpclient.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("rest.New() error = %v", err)
	}
	defer upstream.Close()
	e := demoEngine(t, upstream)

	if w := request(e, http.MethodGet, "/upstream/items?limit=5", ""); w.Code != http.StatusOK || w.Body.String() != `[{"id":1}]` {
		t.Errorf("relay items: %d %s", w.Code, w.Body.String())
	}
	if w := request(e, http.MethodGet, "/upstream/empty", ""); w.Code != http.StatusNoContent {
		t.Errorf("relay empty: %d", w.Code)
	}
	if w := request(e, http.MethodGet, "/upstream/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("relay missing: %d", w.Code)
	}
}
