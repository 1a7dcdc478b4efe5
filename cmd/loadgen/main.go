// Command loadgen fires concurrent order-creation requests at a running
// server and reports throughput. Useful for eyeballing latency under load
// and checking that responses never wait on notification delivery.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "server base URL")
		token     = flag.String("token", "", "bearer token of the ordering user")
		productID = flag.Int64("product", 1, "product id to order")
		total     = flag.Int("n", 50, "total requests")
		workers   = flag.Int("c", 10, "concurrent workers")
	)
	flag.Parse()

	if *token == "" {
		log.Fatal("a -token is required; log in first and pass the JWT")
	}

	body, err := json.Marshal(map[string]any{
		"items": []map[string]any{
			{"productId": *productID, "quantity": 1},
		},
	})
	if err != nil {
		log.Fatalf("failed to build request body: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	jobs := make(chan struct{})

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				req, err := http.NewRequest(http.MethodPost, *baseURL+"/api/orders", bytes.NewReader(body))
				if err != nil {
					failCount.Add(1)
					continue
				}
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+*token)
				req.Header.Set("X-Request-Id", uuid.NewString())

				resp, err := client.Do(req)
				if err != nil {
					failCount.Add(1)
					continue
				}
				resp.Body.Close()
				if resp.StatusCode == http.StatusCreated {
					successCount.Add(1)
				} else {
					failCount.Add(1)
				}
			}
		}()
	}

	for i := 0; i < *total; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", *total)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Requests/sec:     %.1f\n", float64(*total)/elapsed.Seconds())
	fmt.Println("=======================================")
}
