package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"roast-bot/api/internal/roast"
)

// Roaster is the part of roast.Service the HTTP layer needs.
type Roaster interface {
	Roast(ctx context.Context, req roast.Request) (roast.Result, error)
}

type Handle struct {
	svc       Roaster
	maxUpload int64
	log       zerolog.Logger
}

func New(svc Roaster, maxUpload int64, log zerolog.Logger) *Handle {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handle{svc: svc, maxUpload: maxUpload, log: log}
}

func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/roast", h.Roast)
}

func (h *Handle) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI Roast Generator API is running!"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
