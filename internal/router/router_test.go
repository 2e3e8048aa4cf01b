package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/helpify-project/roomscan/internal/cctx"
)

type echoController struct{}

func (echoController) Register(router *mux.Router) {
	router.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(cctx.RequestIDFrom(r.Context())))
	}).Methods(http.MethodPost)
}

func TestRequestID(t *testing.T) {
	h := New(Options{}, echoController{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", nil))
	id := rec.Header().Get("X-Request-Id")
	if id == "" || rec.Body.String() != id {
		t.Fatalf("generated request id %q not propagated, body %q", id, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set("X-Request-Id", "scanner-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "scanner-42" || rec.Body.String() != "scanner-42" {
		t.Fatalf("client request id not reused: %q", rec.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	h := New(Options{}, echoController{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("unexpected not found response %d %q", rec.Code, rec.Body.String())
	}
}

func TestPreflight(t *testing.T) {
	h := New(Options{}, echoController{})

	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://scanner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("unexpected allow methods %q", got)
	}
}

func TestRestrictedOrigins(t *testing.T) {
	h := New(Options{AllowedOrigins: []string{"https://scanner.example"}}, echoController{})

	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set("Origin", "https://scanner.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://scanner.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := New(Options{AccessLog: &buf}, echoController{})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/echo", nil))
	if !strings.Contains(buf.String(), `"POST /echo HTTP/1.1" 200`) {
		t.Fatalf("unexpected access log %q", buf.String())
	}
}
