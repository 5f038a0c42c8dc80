package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/multicloud-ai/inference-gateway/internal/handler"
	"github.com/multicloud-ai/inference-gateway/internal/inference"
	"github.com/multicloud-ai/inference-gateway/internal/provider"
	"github.com/multicloud-ai/inference-gateway/internal/router"
	"github.com/multicloud-ai/inference-gateway/internal/strategy"
)

func TestHandler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handler Suite")
}

var _ = Describe("InferenceHandler", func() {
	var (
		h        *handler.InferenceHandler
		registry *provider.Registry
		backend  *httptest.Server
	)

	limits := handler.Limits{
		DefaultMaxTokens:   100,
		MaxTokens:          2048,
		DefaultTemperature: 0.7,
	}

	BeforeEach(func() {
		backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/predict" {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"text":    "echo: " + body["prompt"].(string),
				"model":   "llama2",
				"latency": 0.25,
			})
		}))

		registry = provider.NewRegistry([]*provider.Provider{
			provider.New("aws", mustParseURL(backend.URL)),
			provider.New("gcp", mustParseURL("http://127.0.0.1:1")),
		})

		log := slog.New(slog.NewTextHandler(os.Stdout, nil))
		rt := router.New(registry, strategy.NewRandomStrategy(), inference.NewClient(2*time.Second), log)
		h = handler.NewInferenceHandler(log, rt, registry, limits)
	})

	AfterEach(func() {
		backend.Close()
	})

	postInference := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/inference", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Inference(rec, req)
		return rec
	}

	Describe("Inference", func() {
		Context("with an available provider", func() {
			BeforeEach(func() {
				registry.SetSnapshot(provider.Snapshot{"aws": true})
			})

			It("should return the backend response with provider attached", func() {
				rec := postInference(`{"prompt": "hi there"}`)
				Expect(rec.Code).To(Equal(http.StatusOK))

				var resp inference.Response
				Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp.Text).To(Equal("echo: hi there"))
				Expect(resp.CloudProvider).To(Equal("aws"))
				Expect(resp.Model).To(Equal("llama2"))
				Expect(resp.Latency).To(Equal(0.25))
			})

			It("should accept explicit sampling parameters", func() {
				rec := postInference(`{"prompt": "hi", "max_tokens": 256, "temperature": 0.2}`)
				Expect(rec.Code).To(Equal(http.StatusOK))
			})
		})

		Context("with invalid payloads", func() {
			It("should reject malformed JSON with 400", func() {
				rec := postInference(`{"prompt": `)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})

			It("should reject a missing prompt with 422", func() {
				rec := postInference(`{"max_tokens": 10}`)
				Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			})

			It("should reject out-of-range max_tokens with 422", func() {
				rec := postInference(`{"prompt": "hi", "max_tokens": 100000}`)
				Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			})

			It("should reject an unknown cloud_provider with 422", func() {
				rec := postInference(`{"prompt": "hi", "cloud_provider": "onprem"}`)
				Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			})
		})

		Context("with no provider available", func() {
			It("should answer 503 with a detail body", func() {
				rec := postInference(`{"prompt": "hi"}`)
				Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

				var body map[string]string
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["detail"]).To(Equal("no available model services"))
			})
		})

		Context("with an unreachable chosen provider", func() {
			It("should answer 503 naming the provider", func() {
				rec := postInference(`{"prompt": "hi", "cloud_provider": "gcp"}`)
				Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

				var body map[string]string
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["detail"]).To(Equal("service gcp unavailable"))
			})
		})

		Context("with a provider returning an application error", func() {
			BeforeEach(func() {
				failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"detail": "model not loaded"})
				}))
				DeferCleanup(failing.Close)

				registry = provider.NewRegistry([]*provider.Provider{
					provider.New("aws", mustParseURL(failing.URL)),
				})
				registry.SetSnapshot(provider.Snapshot{"aws": true})

				log := slog.New(slog.NewTextHandler(os.Stdout, nil))
				rt := router.New(registry, strategy.NewRandomStrategy(), inference.NewClient(2*time.Second), log)
				h = handler.NewInferenceHandler(log, rt, registry, limits)
			})

			It("should pass the backend status and detail through", func() {
				rec := postInference(`{"prompt": "hi"}`)
				Expect(rec.Code).To(Equal(http.StatusInternalServerError))

				var body map[string]string
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["detail"]).To(Equal("model not loaded"))
			})
		})
	})

	Describe("Status", func() {
		It("should return the current availability map", func() {
			registry.SetSnapshot(provider.Snapshot{"aws": true})

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			rec := httptest.NewRecorder()
			h.Status(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var status map[string]bool
			Expect(json.Unmarshal(rec.Body.Bytes(), &status)).To(Succeed())
			Expect(status).To(Equal(map[string]bool{"aws": true, "gcp": false}))
		})
	})

	Describe("Health", func() {
		It("should report the gateway itself as healthy", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			h.Health(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"status": "healthy"}`))
		})
	})
})

func mustParseURL(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return u
}
