// Package handler is the serverless entry point for /api/trends.
package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/samvad-hq/trends-proxy/internal/app"
	"github.com/samvad-hq/trends-proxy/internal/config"
	"github.com/samvad-hq/trends-proxy/internal/logger"
)

var (
	initOnce sync.Once
	routed   http.Handler
	initErr  error
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	log, err := logger.Init(cfg)
	if err != nil {
		initErr = err
		return
	}
	srv, err := app.NewServer(context.Background(), cfg, log)
	if err != nil {
		initErr = err
		logger.ErrorObj("failed to initialize trends handler", "error", err)
		return
	}
	routed = srv.Handler()
}

// Handler is the entry point for Vercel's Go runtime.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	if initErr != nil {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"trends handler initialization failed"}`))
		return
	}
	routed.ServeHTTP(w, r)
}
