package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli"
)

type Config struct {
	Endpoint    string
	Total       int
	Rate        int
	Concurrency int
	Timeout     time.Duration
}

var (
	endpointFlag = cli.StringFlag{
		Name:  "endpoint",
		Usage: "Target `URL`, e.g. http://localhost:10000/refresh",
	}
	totalFlag = cli.IntFlag{
		Name:  "total",
		Usage: "Total requests",
		Value: 1000,
	}
	rateFlag = cli.IntFlag{
		Name:  "rate",
		Usage: "Requests per second",
		Value: 50,
	}
	concurrencyFlag = cli.IntFlag{
		Name:  "concurrency",
		Usage: "Worker count (0=auto)",
	}
	timeoutFlag = cli.DurationFlag{
		Name:  "timeout",
		Usage: "Per-request timeout",
		Value: 30 * time.Second,
	}
)

func configFromContext(ctx *cli.Context) (*Config, error) {
	c := &Config{
		Endpoint:    ctx.String(endpointFlag.Name),
		Total:       ctx.Int(totalFlag.Name),
		Rate:        ctx.Int(rateFlag.Name),
		Concurrency: ctx.Int(concurrencyFlag.Name),
		Timeout:     ctx.Duration(timeoutFlag.Name),
	}

	if c.Endpoint == "" {
		return nil, fmt.Errorf("-%s is required", endpointFlag.Name)
	}
	if c.Rate <= 0 {
		c.Rate = 1
	}

	if c.Concurrency == 0 {
		// GA4 round trips are slow, so keep more workers per request/s.
		c.Concurrency = c.Rate / 2
		if c.Concurrency < 10 {
			c.Concurrency = 10
		}
	}

	return c, nil
}

type Stats struct {
	ok         uint64
	serverErrs uint64
	errors     uint64
	latency    int64 // microseconds
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddServerError() {
	atomic.AddUint64(&s.serverErrs, 1)
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastSrv, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			srv := atomic.LoadUint64(&s.serverErrs)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK, curSrv, curErr := ok-lastOK, srv-lastSrv, errs-lastErr
			lastOK, lastSrv, lastErr = ok, srv, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | 5xx: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curSrv, curErr, avgLat, ok)
		}
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "load-tester"
	app.Usage = "Fires GET requests at the GA4 report service at a fixed rate"
	app.Flags = []cli.Flag{
		endpointFlag,
		totalFlag,
		rateFlag,
		concurrencyFlag,
		timeoutFlag,
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := configFromContext(cliCtx)
	if err != nil {
		return err
	}
	stats := &Stats{}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d", cfg.Endpoint, cfg.Rate, cfg.Total, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stats.StartLogger(ctx)

	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(ctx, client, cfg.Endpoint, jobs, stats, &wg)
	}

	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total 5xx: %d | Total Errors: %d",
		atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.serverErrs), atomic.LoadUint64(&stats.errors))
	return nil
}

func startWorker(ctx context.Context, client *http.Client, endpoint string, jobs <-chan struct{}, stats *Stats, wg *sync.WaitGroup) {
	defer wg.Done()

	for range jobs {
		start := time.Now()

		status, err := fetch(ctx, client, endpoint)
		switch {
		case err != nil:
			stats.AddError()
		case status >= http.StatusInternalServerError:
			// Upstream failures surface as 500 with a JSON body, the proxy itself is still up.
			stats.AddServerError()
		case status >= 300:
			stats.AddError()
		default:
			stats.AddOK(time.Since(start))
		}
	}
}

func fetch(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}

	// Drain so the connection goes back to the keep-alive pool.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return resp.StatusCode, nil
}
