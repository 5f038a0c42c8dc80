package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/multicloud-ai/inference-gateway/internal/handler"
)

func setupRouter(inferenceHandler *handler.InferenceHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Post("/inference", inferenceHandler.Inference)
	r.Get("/status", inferenceHandler.Status)
	r.Get("/health", inferenceHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
