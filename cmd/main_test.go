package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/multicloud-ai/inference-gateway/config"
	"github.com/multicloud-ai/inference-gateway/internal/handler"
	"github.com/multicloud-ai/inference-gateway/internal/inference"
	"github.com/multicloud-ai/inference-gateway/internal/router"
	"github.com/multicloud-ai/inference-gateway/internal/strategy"
)

func TestMain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Main Suite")
}

var _ = Describe("buildRegistry", func() {
	var (
		log *slog.Logger
		cfg *config.Config
	)

	BeforeEach(func() {
		log = slog.Default()
		cfg = &config.Config{}
	})

	Context("with no providers configured", func() {
		It("should return an error", func() {
			registry, err := buildRegistry(cfg, log)
			Expect(err).To(HaveOccurred())
			Expect(registry).To(BeNil())
		})
	})

	Context("with valid providers", func() {
		BeforeEach(func() {
			cfg.Providers = []config.ProviderConfig{
				{Name: "aws", URL: "http://localhost:8001"},
				{Name: "gcp", URL: "http://localhost:8002"},
			}
		})

		It("should register every provider", func() {
			registry, err := buildRegistry(cfg, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Names()).To(Equal([]string{"aws", "gcp"}))
		})
	})
})

var _ = Describe("buildTracker", func() {
	It("should reject an unparseable interval", func() {
		cfg := &config.Config{
			HealthCheck: config.HealthCheckConfig{Interval: "soon", Timeout: "5s"},
		}
		_, err := buildTracker(cfg, nil, slog.Default())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("createStrategy", func() {
	It("should build the configured strategies", func() {
		Expect(createStrategy(slog.Default(), "random")).NotTo(BeNil())
		Expect(createStrategy(slog.Default(), "round-robin")).NotTo(BeNil())
	})

	It("should fall back to random on an unknown name", func() {
		Expect(createStrategy(slog.Default(), "least-latency")).NotTo(BeNil())
	})
})

var _ = Describe("setupRouter", func() {
	It("should expose the gateway endpoints", func() {
		cfg := &config.Config{
			Providers: []config.ProviderConfig{
				{Name: "aws", URL: "http://127.0.0.1:1"},
			},
		}
		registry, err := buildRegistry(cfg, slog.Default())
		Expect(err).NotTo(HaveOccurred())

		rt := router.New(registry, strategy.NewRandomStrategy(), inference.NewClient(time.Second), slog.Default())
		h := handler.NewInferenceHandler(slog.Default(), rt, registry, handler.Limits{
			DefaultMaxTokens:   100,
			MaxTokens:          2048,
			DefaultTemperature: 0.7,
		})

		ts := httptest.NewServer(setupRouter(h))
		defer ts.Close()

		res, err := http.Get(ts.URL + "/health")
		Expect(err).NotTo(HaveOccurred())
		defer res.Body.Close()
		Expect(res.StatusCode).To(Equal(http.StatusOK))

		res, err = http.Get(ts.URL + "/status")
		Expect(err).NotTo(HaveOccurred())
		defer res.Body.Close()

		var status map[string]bool
		Expect(json.NewDecoder(res.Body).Decode(&status)).To(Succeed())
		Expect(status).To(HaveKeyWithValue("aws", false))

		res, err = http.Get(ts.URL + "/metrics")
		Expect(err).NotTo(HaveOccurred())
		res.Body.Close()
		Expect(res.StatusCode).To(Equal(http.StatusOK))
	})
})
