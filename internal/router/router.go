package router

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/helpify-project/roomscan/internal/cctx"
)

const requestIDHeader = "X-Request-Id"

type Options struct {
	// AllowedOrigins for CORS. Defaults to "*".
	AllowedOrigins []string

	// AccessLog receives one combined-format line per request when set.
	AccessLog io.Writer
}

func New(opts Options, controllers ...Controller) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Use(requestID)

	for _, c := range controllers {
		c.Register(router)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = router
	if opts.AccessLog != nil {
		h = handlers.CombinedLoggingHandler(opts.AccessLog, h)
	}

	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)

	if len(origins) == 1 && origins[0] == "*" {
		h = permissiveCORS(h)
	}

	return h
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(cctx.WithValues(r.Context(), cctx.RequestID, id)))
	})
}

// permissiveCORS sets the wildcard CORS headers on every response, including
// requests that carry no Origin header.
func permissiveCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodPost)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
