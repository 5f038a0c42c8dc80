// Loadtest is a concurrent driver for the gateway's /inference endpoint.
// It measures throughput, latency percentiles and the per-provider request
// distribution, which is how the uniform random selection is eyeballed.
//
// Usage:
//
//	go run ./scripts/loadtest -url http://localhost:8080/inference -concurrency 10 -requests 1000
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type inferenceResponse struct {
	Text          string  `json:"text"`
	CloudProvider string  `json:"cloud_provider"`
	Model         string  `json:"model"`
	Latency       float64 `json:"latency"`
}

func main() {
	var (
		targetURL   = flag.String("url", "http://localhost:8080/inference", "Gateway inference URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		prompt      = flag.String("prompt", "tell me about goroutines", "Prompt to send")
		maxTokens   = flag.Int("max-tokens", 50, "max_tokens per request")
		timeoutSec  = flag.Int("timeout", 60, "Per-request timeout in seconds")
	)
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	body, err := json.Marshal(map[string]any{
		"prompt":     *prompt,
		"max_tokens": *maxTokens,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		success int32
		failure int32

		mu          sync.Mutex
		perProvider = make(map[string]int)
		statusCodes = make(map[int]int)
		latencies   []time.Duration
	)

	jobs := make(chan int)
	var wg sync.WaitGroup

	start := time.Now()

	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				reqStart := time.Now()
				res, err := client.Post(*targetURL, "application/json", bytes.NewReader(body))
				if err != nil {
					atomic.AddInt32(&failure, 1)
					continue
				}

				elapsed := time.Since(reqStart)

				var resp inferenceResponse
				decodeErr := json.NewDecoder(res.Body).Decode(&resp)
				io.Copy(io.Discard, res.Body)
				res.Body.Close()

				mu.Lock()
				statusCodes[res.StatusCode]++
				latencies = append(latencies, elapsed)
				if res.StatusCode == http.StatusOK && decodeErr == nil {
					perProvider[resp.CloudProvider]++
				}
				mu.Unlock()

				if res.StatusCode == http.StatusOK {
					atomic.AddInt32(&success, 1)
				} else {
					atomic.AddInt32(&failure, 1)
				}
			}
		}()
	}

	for i := 0; i < *requests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	total := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	fmt.Printf("requests: %d  success: %d  failure: %d\n", *requests, success, failure)
	fmt.Printf("wall time: %s  throughput: %.1f req/s\n", total, float64(*requests)/total.Seconds())
	if len(latencies) > 0 {
		fmt.Printf("latency p50: %s  p95: %s  p99: %s\n",
			percentile(latencies, 0.50), percentile(latencies, 0.95), percentile(latencies, 0.99))
	}

	fmt.Println("status codes:")
	for code, count := range statusCodes {
		fmt.Printf("  %d: %d\n", code, count)
	}

	fmt.Println("per-provider distribution:")
	for providerName, count := range perProvider {
		fmt.Printf("  %-8s %d (%.1f%%)\n", providerName, count, 100*float64(count)/float64(success))
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
