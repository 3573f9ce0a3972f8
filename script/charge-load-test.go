package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/auth"
	timeProvider "github.com/auctionhub/currency-service/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// chargeRequest is the body of POST /api/currency/charge
type chargeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// currencyResponse is the subset of the ledger body the test checks
type currencyResponse struct {
	User         uint64 `json:"user"`
	Balance      string `json:"balance"`
	TotalBalance string `json:"total_balance"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	UserID       uint64
	Scenario     string
	Amount       decimal.Decimal
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	RateLimited        int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Credited           map[uint64]decimal.Decimal
	Lock               sync.Mutex
}

// ChargeScenario defines one kind of request
type ChargeScenario struct {
	Name   string
	Amount string // empty for read-only scenarios
	Path   string
}

type client struct {
	http    *http.Client
	baseURL string
	tokens  map[uint64]string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "1,2,3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", os.Getenv("CL_AUTH_JWT_SECRET"), "JWT signing secret shared with the service")
	issuer := flag.String("issuer", "auction-platform", "JWT issuer expected by the service")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []uint64
	for _, idStr := range strings.Split(*userIDsStr, ",") {
		var id uint64
		if _, err := fmt.Sscanf(strings.TrimSpace(idStr), "%d", &id); err == nil && id > 0 {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []uint64{1}
	}

	jwtManager, err := auth.NewJWTManager(auth.Config{
		JWTSecret: *secret,
		Issuer:    *issuer,
		TokenTTL:  time.Hour,
	}, timeProvider.NewRealTimeProvider())
	if err != nil {
		fmt.Println("Cannot sign tokens:", err)
		os.Exit(1)
	}

	c := &client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(*baseURL, "/"),
		tokens:  make(map[uint64]string, len(userIDs)),
	}
	for _, id := range userIDs {
		token, err := jwtManager.Issue(&entity.User{ID: id, Username: fmt.Sprintf("loadtest-%d", id)})
		if err != nil {
			fmt.Println("Cannot sign token:", err)
			os.Exit(1)
		}
		c.tokens[id] = token
	}

	scenarios := []ChargeScenario{
		{"Charge Small", "10.00", "/api/currency/charge"},
		{"Charge Medium", "250.50", "/api/currency/charge"},
		{"Charge Large", "10000", "/api/currency/charge"},
		{"Read Ledger", "", "/api/currency"},
		{"Read History", "", "/api/currency/transactions?page_size=5"},
	}

	before := make(map[uint64]decimal.Decimal, len(userIDs))
	for _, id := range userIDs {
		ledger, err := c.ledger(id)
		if err != nil {
			fmt.Printf("Cannot read ledger of user %d: %v\n", id, err)
			os.Exit(1)
		}
		before[id] = decimal.RequireFromString(ledger.Balance)
	}

	fmt.Printf("Load testing ledger across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Concurrency: %d goroutines, %d requests, %d ms delay\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
		Credited:        make(map[uint64]decimal.Decimal),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(c, *delayMs, userIDs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	var collected sync.WaitGroup
	collected.Add(1)
	go func() {
		defer collected.Done()
		for result := range results {
			stats.record(result)
		}
	}()

	startTime := time.Now()
	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			stats.Lock.Unlock()
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
		}
	}()

	wg.Wait()
	close(results)
	collected.Wait()
	ticker.Stop()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
	os.Exit(verifyBalances(c, userIDs, before, stats.Credited))
}

func (s *TestStats) record(result TestResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	s.ScenarioStats[result.Scenario]++
	if result.Success {
		s.SuccessfulRequests++
		if result.Amount.IsPositive() {
			s.Credited[result.UserID] = s.Credited[result.UserID].Add(result.Amount)
		}
	} else {
		s.FailedRequests++
		if result.StatusCode == http.StatusTooManyRequests {
			s.RateLimited++
		}
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		s.ErrorCounts[errMsg]++
	}

	s.ResponseTimes = append(s.ResponseTimes, result.ResponseTime)
	s.TotalResponseTime += result.ResponseTime
	s.MinResponseTime = min(s.MinResponseTime, result.ResponseTime)
	s.MaxResponseTime = max(s.MaxResponseTime, result.ResponseTime)
}

func worker(c *client, delayMs int, userIDs []uint64, scenarios []ChargeScenario, jobs <-chan int, results chan<- TestResult) {
	for range jobs {
		// Optional delay between requests to stay under the rate limit
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		result := TestResult{UserID: userID, Scenario: scenario.Name}

		var body []byte
		method := http.MethodGet
		if scenario.Amount != "" {
			method = http.MethodPost
			result.Amount = decimal.RequireFromString(scenario.Amount)
			body, _ = json.Marshal(chargeRequest{Amount: scenario.Amount, Description: "load test"})
		}

		req, err := http.NewRequest(method, c.baseURL+scenario.Path, bytes.NewReader(body))
		if err != nil {
			result.Error = err
			results <- result
			continue
		}
		req.Header.Set("Authorization", "Bearer "+c.tokens[userID])
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Idempotency-Key", uuid.NewString())
		}

		startTime := time.Now()
		resp, err := c.http.Do(req)
		result.ResponseTime = time.Since(startTime)

		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			_ = resp.Body.Close()
		}

		results <- result
	}
}

func (c *client) ledger(userID uint64) (*currencyResponse, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/currency", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens[userID])

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var ledger currencyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// verifyBalances checks that every acknowledged charge is reflected exactly once
func verifyBalances(c *client, userIDs []uint64, before, credited map[uint64]decimal.Decimal) int {
	fmt.Println("\n----------------- LEDGER CONSISTENCY -----------------")
	exitCode := 0
	for _, id := range userIDs {
		ledger, err := c.ledger(id)
		if err != nil {
			fmt.Printf("User %d: cannot read ledger: %v\n", id, err)
			exitCode = 1
			continue
		}

		expected := before[id].Add(credited[id])
		actual := decimal.RequireFromString(ledger.Balance)
		status := "OK"
		if !actual.Equal(expected) {
			status = "MISMATCH"
			exitCode = 1
		}
		fmt.Printf("User %d: expected %s, actual %s  %s\n", id, expected.StringFixed(2), actual.StringFixed(2), status)
	}
	return exitCode
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))

		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		p50 = sorted[len(sorted)*50/100]
		p90 = sorted[len(sorted)*90/100]
		p95 = sorted[len(sorted)*95/100]
		p99 = sorted[len(sorted)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%d rate limited)\n", stats.FailedRequests, stats.RateLimited)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests\n", scenario, count)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
}
