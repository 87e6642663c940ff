package site

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_fetch_page        = "client.fetch-page"
	report_client_fetch_stylesheets = "client.fetch-stylesheets"
	report_client_probe_logo        = "client.probe-logo"
)

type Page struct {
	RequestedURL string
	// the url after redirects, relative links resolve against this
	FinalURL string
	HTML     string
	Document *goquery.Document
}

// Base returns FinalURL parsed, it is nil if FinalURL is not a valid url.
func (p Page) Base() *url.URL {
	parsed, err := url.Parse(p.FinalURL)
	if err != nil {
		return nil
	}
	return parsed
}

// NormalizeURL prepends https:// to urls without a scheme.
func NormalizeURL(link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}

// FetchPage loads `link` following redirects, any error wraps ErrFetch.
func (c *Client) FetchPage(ctx context.Context, link string) (Page, error) {
	link = NormalizeURL(link)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_page, fmt.Errorf("fetch: %w", err), link)
		return Page{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if res.IsError() {
		c.tel.ReportWarning(report_client_fetch_page, "non-success status", link, res.StatusCode())
	}

	finalURL := link
	if res.RawResponse != nil && res.RawResponse.Request != nil && res.RawResponse.Request.URL != nil {
		finalURL = res.RawResponse.Request.URL.String()
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_page, fmt.Errorf("parse html: %w", err), link)
		return Page{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	return Page{
		RequestedURL: link,
		FinalURL:     finalURL,
		HTML:         string(res.Body()),
		Document:     doc,
	}, nil
}
