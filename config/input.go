package config

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultResultsWanted is used when the input states no result count
	// or a non-numeric one.
	DefaultResultsWanted = 20

	// DefaultSearchTerm seeds the crawl when neither URLs nor a query are
	// given.
	DefaultSearchTerm = "laptop"

	searchHost = "https://www.billiger.de"
)

// Input is the actor-style run input: what to search for, where to start
// and how many records to collect.
type Input struct {
	SearchQuery   string
	StartURL      string
	StartURLs     []string
	URL           string
	ResultsWanted int
	CollectOffers bool
	ProxyURLs     []string
}

// LoadInput reads the JSON input file, layering SCRAPER_-prefixed
// environment variables on top. Keys follow the original input schema
// (searchQuery, startUrl, startUrls, url, results_wanted, collectOffers,
// proxyConfiguration.proxyUrls).
func LoadInput(path string) (*Input, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
			return nil, fmt.Errorf("load input file %q: %w", path, err)
		}
	}

	// SCRAPER_SEARCHQUERY, SCRAPER_RESULTS_WANTED and friends override
	// the file.
	if err := k.Load(env.Provider("SCRAPER_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SCRAPER_")
		switch s {
		case "SEARCHQUERY":
			return "searchQuery"
		case "STARTURL":
			return "startUrl"
		case "COLLECTOFFERS":
			return "collectOffers"
		default:
			return strings.ToLower(s)
		}
	}), nil); err != nil {
		return nil, fmt.Errorf("load input environment: %w", err)
	}

	in := &Input{
		SearchQuery:   k.String("searchQuery"),
		StartURL:      k.String("startUrl"),
		StartURLs:     startURLList(k.Get("startUrls")),
		URL:           k.String("url"),
		ResultsWanted: normalizeResultsWanted(k.Get("results_wanted")),
		CollectOffers: true,
		ProxyURLs:     k.Strings("proxyConfiguration.proxyUrls"),
	}
	if k.Exists("collectOffers") {
		in.CollectOffers = k.Bool("collectOffers")
	}
	if urls := k.Strings("proxyUrls"); len(urls) > 0 {
		in.ProxyURLs = urls
	}
	return in, nil
}

// startURLList accepts both input shapes: bare URL strings and objects
// carrying a url key.
func startURLList(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var urls []string
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				urls = append(urls, v)
			}
		case map[string]interface{}:
			if u, ok := v["url"].(string); ok && u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// normalizeResultsWanted clamps the requested result count: non-numeric
// input falls back to the default, anything below one is raised to one.
func normalizeResultsWanted(raw interface{}) int {
	if raw == nil {
		return DefaultResultsWanted
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return DefaultResultsWanted
		}
		value = parsed
	default:
		return DefaultResultsWanted
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return DefaultResultsWanted
	}
	if value < 1 {
		return 1
	}
	return int(value)
}

// ResolveSeeds returns the seed URLs in priority order: the startUrls
// list, then startUrl, then url, then a search URL built from the query,
// then a search for the default term.
func (in *Input) ResolveSeeds() []string {
	var seeds []string
	seeds = append(seeds, in.StartURLs...)
	if in.StartURL != "" {
		seeds = append(seeds, in.StartURL)
	}
	if in.URL != "" {
		seeds = append(seeds, in.URL)
	}
	if len(seeds) == 0 && in.SearchQuery != "" {
		seeds = append(seeds, BuildSearchURL(in.SearchQuery))
	}
	if len(seeds) == 0 {
		seeds = append(seeds, BuildSearchURL(DefaultSearchTerm))
	}
	return seeds
}

// BuildSearchURL builds the site's search URL for a query.
func BuildSearchURL(query string) string {
	u, _ := url.Parse(searchHost + "/search")
	q := u.Query()
	q.Set("searchstring", strings.TrimSpace(query))
	u.RawQuery = q.Encode()
	return u.String()
}
