// Package brandfetch looks up a brand in the Brandfetch brand data API.
package brandfetch

import (
	"context"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/telemetry"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch = "client.fetch"
)

const DEFAULT_BASE_URL = "https://api.brandfetch.io"

// Labeled is a brand value with the role it plays, ex. {"primary", "#10B981"}.
type Labeled struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Logo struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type Guidelines struct {
	Tagline  string   `json:"tagline"`
	Mission  string   `json:"mission"`
	Values   []string `json:"values"`
	Industry string   `json:"industry"`
}

// Assets is what is known about a brand, label order is stable.
type Assets struct {
	Name       string     `json:"name"`
	Logo       Logo       `json:"logo"`
	Colors     []Labeled  `json:"colors"`
	Fonts      []Labeled  `json:"fonts"`
	Guidelines Guidelines `json:"brand_guidelines"`
	// true if the values came from the API rather than the defaults
	Fetched bool `json:"fetched"`
}

// DefaultAssets are returned when the API is unavailable.
func DefaultAssets() Assets {
	return Assets{
		Logo: Logo{Formats: []string{}},
		Colors: []Labeled{
			{"primary", "#10B981"},
			{"secondary", "#34D399"},
			{"tertiary", "#6EE7B7"},
			{"background", "#FFFFFF"},
			{"text", "#1F2937"},
		},
		Fonts: []Labeled{
			{"primary", "Inter"},
			{"secondary", "Segoe UI"},
			{"heading", "Inter"},
		},
		Guidelines: Guidelines{Values: []string{}},
	}
}

func set(list []Labeled, label, value string) {
	for i := range list {
		if list[i].Label == label {
			list[i].Value = value
			return
		}
	}
}

type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Dump    telemetry.DumpOutput
}

type Client struct {
	http   *resty.Client
	hasKey bool
	tel    telemetry.API
}

func NewClient(options Options, tel telemetry.API) *Client {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("brandfetch", tel)

	if options.BaseURL == "" {
		options.BaseURL = DEFAULT_BASE_URL
	}
	if options.Timeout <= 0 {
		options.Timeout = 10 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(options.BaseURL, "/"))
	httpClient.SetTimeout(options.Timeout)
	httpClient.SetHeader("accept", "application/json")
	if options.APIKey != "" {
		httpClient.SetAuthToken(options.APIKey)
	}
	telemetry.InstrumentResty(httpClient, tel, options.Dump)

	return &Client{
		http:   httpClient,
		hasKey: options.APIKey != "",
		tel:    tel,
	}
}

type logoFormat struct {
	Src    string `json:"src"`
	Format string `json:"format"`
}

type logoResponse struct {
	URL     string       `json:"url"`
	Type    string       `json:"type"`
	Formats []logoFormat `json:"formats"`
}

type fontResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type industryResponse struct {
	Name string `json:"name"`
}

type companyResponse struct {
	Industries []industryResponse `json:"industries"`
}

type brandResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Logo        *logoResponse     `json:"logo"`
	Logos       []logoResponse    `json:"logos"`
	Colors      []json.RawMessage `json:"colors"`
	Fonts       []fontResponse    `json:"fonts"`
	Company     *companyResponse  `json:"company"`
}

// color entries are either plain hex strings or objects with a hex field.
func decodeColor(raw json.RawMessage) string {
	var hex string
	if json.Unmarshal(raw, &hex) == nil {
		return hex
	}
	var obj struct {
		Hex string `json:"hex"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Hex
	}
	return ""
}

func (r brandResponse) apply(assets *Assets) {
	assets.Name = r.Name

	if r.Logo != nil && r.Logo.URL != "" {
		assets.Logo.URL = r.Logo.URL
	}
	for _, logo := range r.Logos {
		for _, format := range logo.Formats {
			if format.Format != "" {
				assets.Logo.Formats = append(assets.Logo.Formats, format.Format)
			}
			if assets.Logo.URL == "" && format.Src != "" {
				assets.Logo.URL = format.Src
			}
		}
	}

	colors := []string{}
	for _, raw := range r.Colors {
		if hex := decodeColor(raw); hex != "" {
			colors = append(colors, hex)
		}
	}
	if len(colors) > 0 {
		set(assets.Colors, "primary", colors[0])
	}
	if len(colors) > 1 {
		set(assets.Colors, "secondary", colors[1])
	}

	if len(r.Fonts) > 0 {
		name := r.Fonts[0].Name
		if name == "" {
			name = "Inter"
		}
		set(assets.Fonts, "primary", name)
	}

	if r.Description != "" {
		assets.Guidelines.Mission = r.Description
	}
	if r.Company != nil && len(r.Company.Industries) > 0 {
		assets.Guidelines.Industry = r.Company.Industries[0].Name
	}
	assets.Fetched = true
}

// Fetch returns what the API knows about `brand` (a name or domain), starting
// from DefaultAssets. Without an api key or on any API error the defaults are
// returned as is.
func (c *Client) Fetch(ctx context.Context, brand string) Assets {
	assets := DefaultAssets()
	brand = strings.TrimSpace(brand)
	if !c.hasKey || brand == "" {
		return assets
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get("/v2/brands/" + url.PathEscape(brand))
	if err != nil {
		c.tel.ReportWarning(report_client_fetch, fmt.Errorf("fetch: %w", err), brand)
		return assets
	}
	if res.StatusCode() != 200 {
		c.tel.ReportWarning(report_client_fetch, "non-200 status", brand, res.StatusCode())
		return assets
	}

	var body brandResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("unmarshal: %w", err), brand)
		return assets
	}
	body.apply(&assets)
	return assets
}
