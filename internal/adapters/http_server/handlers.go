// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"shopcart_sentiment/internal/app"
	"shopcart_sentiment/internal/domain"
)

type Handlers struct {
	S *app.ScoringService
	Q *app.QueryService

	UpdateRate  float64 // rescore requests per second, 0 disables limiting
	UpdateBurst int
	ReadTimeout time.Duration
}

type problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Succeeded *int   `json:"succeeded,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	readTimeout := h.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}

	s.mux.Get("/healthz", h.healthz)
	s.mux.Route("/api/sentiment", func(r chi.Router) {
		r.With(Timeout(readTimeout)).Get("/scores", h.listScores)
		r.Group(func(r chi.Router) {
			r.Use(RateLimit(h.UpdateRate, h.UpdateBurst))
			r.Get("/update_scores", h.updateScores)
			r.Post("/products/{productId}/score", h.rescoreProduct)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

// writeError maps domain errors to problem responses. Causes are logged,
// never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	p := problem{Type: "about:blank"}
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier):
		p.Status, p.Title, p.Detail = http.StatusBadRequest, "Invalid ID", "productId must be a 24 character hex identifier"
	case errors.Is(err, domain.ErrStorageUnavailable):
		p.Status, p.Title, p.Detail = http.StatusServiceUnavailable, "Storage Unavailable", "product storage is unreachable"
	case errors.Is(err, domain.ErrEstimatorUnavailable):
		p.Status, p.Title, p.Detail = http.StatusBadGateway, "Sentiment Estimator Unavailable", "sentiment estimation failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		p.Status, p.Title = http.StatusServiceUnavailable, "Request Cancelled"
	default:
		p.Status, p.Title = http.StatusInternalServerError, "Internal Server Error"
	}

	var be *domain.BatchError
	if errors.As(err, &be) {
		n := be.Succeeded
		p.Succeeded = &n
		p.Detail = "rescoring stopped early: " + p.Detail
	}

	log.Error().Err(err).
		Str("path", r.URL.Path).
		Int("status", p.Status).
		Msg("request failed")
	writeProblemBody(w, p)
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Q.Ready(ctx); err != nil {
		log.Warn().Err(err).Msg("health check failed")
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "storage ping failed")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) updateScores(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.UpdateAllScores(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) rescoreProduct(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "productId")
	score, err := h.S.ComputeSentimentScore(r.Context(), raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, _ := domain.ParseProductID(raw)
	writeJSON(w, http.StatusOK, domain.ProductScore{ProductID: id, Score: score})
}

func (h *Handlers) listScores(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListScores(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
