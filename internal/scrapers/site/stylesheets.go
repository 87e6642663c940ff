package site

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// public CDNs serve framework css (bootstrap, icon packs, ...) rather than the site's own.
var cdnSkipList = []string{
	"cdn.jsdelivr",
	"cdnjs.cloudflare",
	"fonts.googleapis",
	"unpkg.com",
	"stackpath",
	"maxcdn",
}

type Stylesheet struct {
	URL string
	// empty if the stylesheet could not be fetched
	CSS string
}

// StylesheetLinks returns the resolved urls of every first-party stylesheet
// linked in `doc`, in document order.
func StylesheetLinks(doc *goquery.Document, base *url.URL) []string {
	if doc == nil {
		return nil
	}
	links := []string{}
	doc.Find("link[rel]").Each(func(_ int, link *goquery.Selection) {
		rel := strings.ToLower(link.AttrOr("rel", ""))
		if !strings.Contains(rel, "stylesheet") {
			return
		}
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		for _, skip := range cdnSkipList {
			if strings.Contains(lower, skip) {
				return
			}
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		links = append(links, ref.String())
	})
	return links
}

// FetchStylesheets fetches up to MaxStylesheets first-party stylesheets in parallel,
// the result keeps document order.
func (c *Client) FetchStylesheets(ctx context.Context, doc *goquery.Document, base *url.URL) []Stylesheet {
	links := StylesheetLinks(doc, base)
	if len(links) > c.options.MaxStylesheets {
		links = links[:c.options.MaxStylesheets]
	}

	result := make([]Stylesheet, len(links))
	wg := sync.WaitGroup{}
	for i, link := range links {
		result[i].URL = link

		wg.Add(1)
		go func() {
			defer wg.Done()
			result[i].CSS = c.fetchStylesheet(ctx, link)
		}()
	}
	wg.Wait()

	fetched := 0
	for _, sheet := range result {
		if sheet.CSS != "" {
			fetched++
		}
	}
	c.tel.ReportCount(report_client_fetch_stylesheets, int64(fetched))

	return result
}

func (c *Client) fetchStylesheet(ctx context.Context, link string) string {
	ctx, cancel := context.WithTimeout(ctx, c.options.StylesheetTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("accept", "text/css,*/*;q=0.1").
		Get(link)
	if err != nil {
		c.tel.ReportWarning(report_client_fetch_stylesheets, fmt.Errorf("fetch: %w", err), link)
		return ""
	}
	if res.StatusCode() != 200 {
		c.tel.ReportWarning(report_client_fetch_stylesheets, "non-200 status", link, res.StatusCode())
		return ""
	}
	return string(res.Body())
}
