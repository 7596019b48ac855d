// Package scraper drives the crawl: it wires the colly collector, routes
// fetched pages by their classification and applies the frontier rules
// that bound the run to the requested result count.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gocolly/colly/v2"
	collyproxy "github.com/gocolly/colly/v2/proxy"

	"github.com/aluiziolira/go-scrape-prices/config"
	"github.com/aluiziolira/go-scrape-prices/models"
	"github.com/aluiziolira/go-scrape-prices/parser"
	"github.com/aluiziolira/go-scrape-prices/pipeline"
)

// Request context keys carried across enqueued URLs.
const (
	ctxLabel  = "label"
	ctxPageNo = "page_no"
)

// Scraper wraps the colly collector, the frontier bookkeeping and the
// retry logic for the price-comparison target.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	retry     *retryManager
	frontier  *Frontier
	Metrics   *Metrics

	requestCount int64
	errorCount   int64
	searchPages  int64

	mu           sync.Mutex
	failedURLs   []string
	errorsByType map[string]int

	handlersOnce sync.Once
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.Async(true),
		colly.AllowedDomains(allowedDomains(parsed.Host)...),
		colly.UserAgent(cfg.UserAgent),
	)

	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	if len(cfg.ProxyURLs) > 0 {
		switcher, err := collyproxy.RoundRobinProxySwitcher(cfg.ProxyURLs...)
		if err != nil {
			return nil, fmt.Errorf("configure proxies: %w", err)
		}
		collector.SetProxyFunc(switcher)
	}

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Parallelism,
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	}); err != nil {
		return nil, fmt.Errorf("configure rate limits: %w", err)
	}

	s := &Scraper{
		cfg:          cfg,
		collector:    collector,
		frontier:     NewFrontier(cfg.ResultsWanted),
		errorsByType: make(map[string]int),
		Metrics:      NewMetrics(),
	}
	s.retry = newRetryManager(collector, cfg, s.Metrics)
	return s, nil
}

// allowedDomains covers the host with and without the www prefix, since
// the site links both forms.
func allowedDomains(host string) []string {
	if bare := strings.TrimPrefix(host, "www."); bare != host {
		return []string{host, bare}
	}
	return []string{host, "www." + host}
}

// Run seeds the crawl and blocks until the frontier drains or the result
// budget is spent. Records stream through the pipeline as they are saved.
func (s *Scraper) Run(ctx context.Context, p *pipeline.Pipeline) (*models.ScrapeResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.retry.SetContext(ctx)
	s.configureHandlers(ctx, p)

	start := time.Now()
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			s.collector.Wait()
			s.retry.Stop()
		case <-done:
		}
	}()

	seeded := 0
	for _, seed := range s.cfg.Seeds {
		if !s.frontier.MarkSeen(seed) {
			continue
		}
		label := parser.PageDetail.String()
		if parser.Classify(seed) == parser.PageSearch {
			label = parser.PageSearch.String()
		}
		if err := s.enqueue(seed, label, 1); err != nil {
			slog.Error("seed visit failed", slog.String("url", seed), slog.Any("error", err))
			continue
		}
		seeded++
	}
	if seeded == 0 {
		return nil, fmt.Errorf("no usable seed urls")
	}

	s.collector.Wait()
	s.retry.Stop()

	return &models.ScrapeResult{
		StartTime:    start,
		EndTime:      time.Now(),
		SavedCount:   s.frontier.Saved(),
		SearchPages:  int(atomic.LoadInt64(&s.searchPages)),
		ErrorCount:   int(atomic.LoadInt64(&s.errorCount)),
		FailedURLs:   s.snapshotFailedURLs(),
		ErrorsByType: s.snapshotErrors(),
		RetryCount:   s.retry.TotalRetries(),
		RequestCount: int(atomic.LoadInt64(&s.requestCount)),
	}, nil
}

func (s *Scraper) configureHandlers(ctx context.Context, p *pipeline.Pipeline) {
	s.handlersOnce.Do(func() {
		s.collector.OnRequest(func(r *colly.Request) {
			r.Ctx.Put("start", time.Now())
			current := atomic.AddInt64(&s.requestCount, 1)
			s.Metrics.IncRequest("started")
			if current%50 == 0 {
				slog.Debug("crawl progress",
					slog.Int64("requests", current),
					slog.Int("saved", s.frontier.Saved()),
					slog.String("url", r.URL.String()),
				)
			}
		})

		s.collector.OnResponse(func(r *colly.Response) {
			if r.StatusCode >= http.StatusBadRequest {
				slog.Error("non-200 response",
					slog.Int("status", r.StatusCode),
					slog.String("url", r.Request.URL.String()),
				)
			}
			if start, ok := r.Request.Ctx.GetAny("start").(time.Time); ok {
				s.Metrics.ObserveDuration(time.Since(start))
			}
		})

		s.collector.OnError(func(r *colly.Response, err error) {
			atomic.AddInt64(&s.errorCount, 1)
			statusCode := 0
			if r != nil {
				statusCode = r.StatusCode
			}
			category := errorTypeLabel(classifyError(err, statusCode))

			s.mu.Lock()
			s.errorsByType[category]++
			s.mu.Unlock()

			pageURL := ""
			if r != nil && r.Request != nil && r.Request.URL != nil {
				pageURL = r.Request.URL.String()
			}
			slog.Error("request error",
				slog.String("url", pageURL),
				slog.String("category", category),
				slog.Any("error", err),
			)
			s.Metrics.IncError(category)

			if !s.retry.Schedule(pageURL) {
				s.mu.Lock()
				s.failedURLs = append(s.failedURLs, pageURL)
				s.mu.Unlock()
			}
		})

		s.collector.OnHTML("html", func(e *colly.HTMLElement) {
			if ctx.Err() != nil {
				return
			}
			s.handlePage(e, p)
		})
	})
}

// handlePage routes a fetched page by its classification. A page whose URL
// classifies as unknown is still treated as a detail page when it was
// enqueued under the detail label.
func (s *Scraper) handlePage(e *colly.HTMLElement, p *pipeline.Pipeline) {
	pageURL := e.Request.URL.String()
	kind := parser.Classify(pageURL)
	if kind == parser.PageUnknown && e.Request.Ctx.Get(ctxLabel) == parser.PageDetail.String() {
		kind = parser.PageDetail
	}
	s.Metrics.IncPage(kind.String())

	switch kind {
	case parser.PageSearch:
		s.handleSearchPage(e, pageURL)
	case parser.PageDetail:
		s.handleDetailPage(e, p, pageURL)
	}
}

func (s *Scraper) handleSearchPage(e *colly.HTMLElement, pageURL string) {
	atomic.AddInt64(&s.searchPages, 1)
	pageNo := requestPageNo(e.Request)

	links := parser.FindProductLinks(e.DOM, pageURL)
	nextPage := parser.FindNextPage(e.DOM, pageURL)

	enqueue, followNext := s.frontier.PlanSearch(links, nextPage)
	slog.Info("search page processed",
		slog.String("url", pageURL),
		slog.Int("page", pageNo),
		slog.Int("links", len(links)),
		slog.Int("enqueued", len(enqueue)),
		slog.Bool("next", followNext),
	)

	for _, link := range enqueue {
		if err := s.enqueue(link, parser.PageDetail.String(), pageNo); err != nil {
			slog.Debug("enqueue detail failed", slog.String("url", link), slog.Any("error", err))
		}
	}
	if followNext {
		if err := s.enqueue(nextPage, parser.PageSearch.String(), pageNo+1); err != nil {
			slog.Debug("enqueue next page failed", slog.String("url", nextPage), slog.Any("error", err))
		}
	}
}

func (s *Scraper) handleDetailPage(e *colly.HTMLElement, p *pipeline.Pipeline, pageURL string) {
	// Late-arrival guard: the page was fetched before the budget ran out.
	if s.frontier.AtCap() {
		return
	}

	structured := parser.ExtractStructured(parser.JSONLDBlocks(e.DOM))
	if structured == nil || structured.ProductName == "" {
		slog.Debug("structured data missing, using html fallback", slog.String("url", pageURL))
	}
	record := parser.Merge(structured, parser.ExtractHTML(e.DOM))

	if record.ProductName == "" {
		slog.Warn("could not extract product data", slog.String("url", pageURL))
		s.Metrics.IncSkipped()
		return
	}

	if s.cfg.CollectOffers {
		record.Offers = parser.ExtractOffers(e.DOM, pageURL)
		s.Metrics.AddOffers(len(record.Offers))
	}
	record.ProductURL = pageURL
	record.ScrapedAt = time.Now().UTC()

	if !s.frontier.CommitSave() {
		return
	}
	s.Metrics.IncSaved()

	if err := p.Process(record); err != nil && !errors.Is(err, pipeline.ErrPipelineClosed) {
		slog.Error("pipeline process error", slog.Any("error", err))
	}
	slog.Info("saved product",
		slog.Int("saved", s.frontier.Saved()),
		slog.Int("wanted", s.frontier.Wanted()),
		slog.String("name", record.ProductName),
	)
}

// enqueue issues a request carrying the page-kind label and page number in
// the colly request context.
func (s *Scraper) enqueue(pageURL, label string, pageNo int) error {
	reqCtx := colly.NewContext()
	reqCtx.Put(ctxLabel, label)
	reqCtx.Put(ctxPageNo, strconv.Itoa(pageNo))
	return s.collector.Request(http.MethodGet, pageURL, nil, reqCtx, nil)
}

func requestPageNo(r *colly.Request) int {
	n, err := strconv.Atoi(r.Ctx.Get(ctxPageNo))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s *Scraper) snapshotFailedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.failedURLs))
	copy(out, s.failedURLs)
	return out
}

func (s *Scraper) snapshotErrors() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.errorsByType))
	for k, v := range s.errorsByType {
		out[k] = v
	}
	return out
}

func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch statusCode {
		case http.StatusForbidden:
			return ErrForbidden{Err: wrapped}
		case http.StatusNotFound:
			return ErrNotFound{Err: wrapped}
		case http.StatusTooManyRequests:
			return ErrRateLimited{Err: wrapped}
		}
	}

	if err == nil {
		return nil
	}
	return err
}
