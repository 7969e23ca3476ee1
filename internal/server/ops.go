// Package server exposes the operational HTTP endpoints of the bot:
// liveness and a health report over the static data assets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/diag"
	"github.com/sirupsen/logrus"
)

// Ops is the operational HTTP server.
type Ops struct {
	server   *http.Server
	dataPath string
}

type healthResponse struct {
	Status  string            `json:"status"`
	Missing []string          `json:"missing,omitempty"`
	Files   []diag.FileReport `json:"files"`
}

// NewOps builds the ops server for the given listen address.
func NewOps(addr, dataPath string) *Ops {
	ops := &Ops{dataPath: dataPath}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Get("/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/health", ops.handleHealth)

	ops.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return ops
}

func (o *Ops) handleHealth(w http.ResponseWriter, _ *http.Request) {
	reports := diag.CheckDataFiles(o.dataPath)
	missing := diag.Missing(reports)

	response := healthResponse{Status: "ok", Missing: missing, Files: reports}
	status := http.StatusOK
	if len(missing) > 0 {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logrus.WithError(err).Error("Failed to encode health response")
	}
}

// Run starts serving in the calling goroutine until Shutdown.
func (o *Ops) Run() {
	logrus.Infof("Ops HTTP server listening on %s", o.server.Addr)
	if err := o.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("Ops HTTP server stopped")
	}
}

// Shutdown stops the server gracefully.
func (o *Ops) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := o.server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Ops HTTP server shutdown failed")
	}
}
