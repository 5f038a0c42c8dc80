// Mockprovider is a fake model service used for manual gateway testing.
// It serves the /health and /predict endpoints a real backend would.
//
// Usage:
//
//	go run ./scripts/mockprovider -port 8001 -provider aws
//	go run ./scripts/mockprovider -port 8002 -provider gcp -latency 300ms
//	go run ./scripts/mockprovider -port 8003 -provider azure -fail
//
// The -fail flag makes /predict answer 500 while /health stays 200, which
// exercises the gateway's error pass-through. The -unhealthy flag makes
// /health answer 503 so the liveness tracker marks the provider down.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type predictRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type predictResponse struct {
	Text    string  `json:"text"`
	Model   string  `json:"model"`
	Latency float64 `json:"latency"`
}

func main() {
	port := flag.Int("port", 8001, "port to listen on")
	providerName := flag.String("provider", "aws", "cloud provider name to report")
	model := flag.String("model", "llama2", "model name to report")
	latency := flag.Duration("latency", 100*time.Millisecond, "simulated generation time")
	fail := flag.Bool("fail", false, "answer /predict with 500")
	unhealthy := flag.Bool("unhealthy", false, "answer /health with 503")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if *unhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":         "healthy",
			"cloud_provider": *providerName,
		})
	})

	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		log.Printf("request: provider=%s from=%s prompt=%q max_tokens=%d temperature=%.2f",
			*providerName, r.RemoteAddr, req.Prompt, req.MaxTokens, req.Temperature)

		if *fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "model not loaded"})
			return
		}

		time.Sleep(*latency)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(predictResponse{
			Text:    fmt.Sprintf("[%s/%s] completion for: %s", *providerName, *model, req.Prompt),
			Model:   *model,
			Latency: latency.Seconds(),
		})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("mock %s model service listening on %s", *providerName, addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
