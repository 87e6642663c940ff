// Package site fetches the pages, stylesheets and logos of a brand's website.
package site

import (
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/telemetry"
	"errors"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrFetch is returned when the page of a website could not be loaded at all.
var ErrFetch = errors.New("failed to load website")

const DEFAULT_USER_AGENT = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Options struct {
	UserAgent         string
	PageTimeout       time.Duration
	StylesheetTimeout time.Duration
	// requests per second, <= 0 disables rate limiting
	RateLimit      float64
	MaxStylesheets int
	MaxRedirects   int
	// dump every HTTP exchange, can be nil
	Dump telemetry.DumpOutput
}

func DefaultOptions() Options {
	return Options{
		UserAgent:         DEFAULT_USER_AGENT,
		PageTimeout:       15 * time.Second,
		StylesheetTimeout: 5 * time.Second,
		RateLimit:         8,
		MaxStylesheets:    3,
		MaxRedirects:      10,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = defaults.UserAgent
	}
	if o.PageTimeout <= 0 {
		o.PageTimeout = defaults.PageTimeout
	}
	if o.StylesheetTimeout <= 0 {
		o.StylesheetTimeout = defaults.StylesheetTimeout
	}
	if o.MaxStylesheets <= 0 {
		o.MaxStylesheets = defaults.MaxStylesheets
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = defaults.MaxRedirects
	}
	return o
}

type Client struct {
	http    *resty.Client
	options Options
	tel     telemetry.API
}

func NewClient(options Options, tel telemetry.API) *Client {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("site_scraper", tel)
	options = options.withDefaults()

	httpClient := resty.New()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	httpClient.SetTransport(newDecodingTransport(cloudflarebp.AddCloudFlareByPass(transport)))

	httpClient.SetHeader("user-agent", options.UserAgent)
	httpClient.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(options.MaxRedirects))
	httpClient.SetTimeout(options.PageTimeout)

	if options.RateLimit > 0 {
		// max burst >= stylesheets + 1 means the page and its stylesheets go out together
		rateLimiter := rate.NewLimiter(rate.Limit(options.RateLimit), options.MaxStylesheets+1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, options.Dump)

	return &Client{
		http:    httpClient,
		options: options,
		tel:     tel,
	}
}
