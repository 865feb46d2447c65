// Package api exposes the search service over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hhandc/GoodUsed/search"
)

// minQueryLength rejects queries too short to search marketplaces with.
const minQueryLength = 2

// Handler routes API requests to the search service.
type Handler struct {
	service *search.Service
	metrics *search.Metrics
}

func NewHandler(service *search.Service, metrics *search.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

// Router builds the full route table, CORS middleware included.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	// OPTIONS is routed so preflights reach the CORS middleware instead of
	// mux's 405 handler.
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/search", h.handleSearch).Methods(http.MethodGet, http.MethodOptions)
	if h.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet, http.MethodOptions)
	}
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(query)) < minQueryLength {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "query parameter q must be at least 2 characters",
		})
		return
	}

	var referencePrice *float64
	if msrp := r.URL.Query().Get("msrp"); msrp != "" {
		v, err := strconv.ParseFloat(msrp, 64)
		if err != nil || v < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "msrp must be a non-negative number",
			})
			return
		}
		referencePrice = &v
	}

	result := h.service.Search(r.Context(), query, referencePrice)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", slog.Any("error", err))
	}
}

// corsMiddleware mirrors the permissive policy of the original deployment:
// the API serves a public read-only search and allows any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
