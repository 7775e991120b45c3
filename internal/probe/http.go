package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/internal/domain/types"
	"github.com/okian/echochamber/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON performs a GET and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.Unmarshal(body, v)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitCases posts every case to /api/analyze using a worker pool and
// returns outcomes in submission order.
func submitCases(ctx context.Context, config *Config, cases []Case) []Outcome {
	log := logger.Get().Named("probe")
	log.Info(ctx, "submitting cases", logger.Int("cases", len(cases)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/analyze"
	outcomes := make([]Outcome, len(cases))

	var (
		submitted int64
		passed    int64
	)

	type item struct {
		index int
		c     Case
	}
	work := make(chan item, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range work {
				o := analyzeCase(ctx, client, url, it.c)
				outcomes[it.index] = o

				atomic.AddInt64(&submitted, 1)
				if o.Passed {
					atomic.AddInt64(&passed, 1)
				}
				if config.Verbose || !o.Passed {
					logOutcome(ctx, log, o)
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for i, c := range cases {
			select {
			case <-ctx.Done():
				return
			case work <- item{index: i, c: c}:
			}
		}
	}()

	wg.Wait()

	log.Info(ctx, "case submission completed",
		logger.Int("submitted", int(atomic.LoadInt64(&submitted))),
		logger.Int("passed", int(atomic.LoadInt64(&passed))),
	)
	return outcomes
}

// analyzeCase submits a single case and verifies the answer.
func analyzeCase(ctx context.Context, client *HTTPClient, url string, c Case) Outcome {
	start := time.Now()
	resp, err := client.Post(ctx, url, map[string]any{"sequence": c.Sequence})
	if err != nil {
		return Outcome{Case: c, Endpoint: "analyze", Reason: err.Error(), Latency: time.Since(start)}
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return Outcome{Case: c, Endpoint: "analyze", Status: resp.StatusCode, Reason: err.Error(), Latency: time.Since(start)}
	}

	var res types.AnalysisResult
	if err := json.Unmarshal(body, &res); err != nil {
		return Outcome{Case: c, Endpoint: "analyze", Status: resp.StatusCode, Reason: "undecodable body: " + err.Error(), Latency: time.Since(start)}
	}
	o := outcomeOf(c, "analyze", resp.StatusCode, res)
	o.Latency = time.Since(start)
	return o
}

// submitBatch posts all cases in one /api/analyze-batch request and verifies
// each result by position.
func submitBatch(ctx context.Context, config *Config, cases []Case) ([]Outcome, error) {
	client := newHTTPClient(config.Timeout)
	sequences := make([]any, len(cases))
	for i, c := range cases {
		sequences[i] = c.Sequence
	}

	start := time.Now()
	resp, err := client.Post(ctx, config.BaseURL+"/api/analyze-batch", map[string]any{"sequences": sequences})
	if err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("batch request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var batch types.BatchResponse
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	if len(batch.Results) != len(cases) {
		return nil, fmt.Errorf("batch returned %d results for %d sequences", len(batch.Results), len(cases))
	}

	latency := time.Since(start)
	outcomes := make([]Outcome, len(cases))
	for i, c := range cases {
		outcomes[i] = outcomeOf(c, "analyze-batch", 0, batch.Results[i])
		outcomes[i].Latency = latency
	}
	return outcomes, nil
}

// fetchStatistics reads GET /api/statistics.
func fetchStatistics(ctx context.Context, config *Config) (history.Statistics, error) {
	var stats history.Statistics
	err := newHTTPClient(config.Timeout).getJSON(ctx, config.BaseURL+"/api/statistics", &stats)
	return stats, err
}

func logOutcome(ctx context.Context, log logger.Logger, o Outcome) {
	fields := []logger.Field{
		logger.String("case", o.Case.Name),
		logger.String("endpoint", o.Endpoint),
		logger.Int("status", o.Status),
		logger.String("latency", o.Latency.String()),
	}
	if o.Passed {
		log.Info(ctx, "case passed", fields...)
		return
	}
	log.Warn(ctx, "case failed", append(fields, logger.String("reason", o.Reason))...)
}
