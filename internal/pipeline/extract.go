// Package pipeline turns a website into brand assets and the profile the frontend works with.
package pipeline

import (
	"context"
	"diya-backend/internal/brand"
	"diya-backend/internal/brand/color"
	"diya-backend/internal/brand/font"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/extract"
	"diya-backend/internal/persona"
	"diya-backend/internal/scrapers/site"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const (
	report_extractor_layer1   = "extractor.layer1"
	report_extractor_layer2   = "extractor.layer2"
	report_extractor_total    = "extractor.total"
	report_extractor_strategy = "extractor.strategy"
	report_extractor_logo     = "extractor.logo"

	debug_empty_analysis = "empty model analysis, using scraped assets only"
)

const (
	MAX_ALL_COLORS = 10
	MAX_FONTS      = 5
	DEFAULT_FONT   = "Inter"

	MAX_CONCURRENT_EXTRACTIONS = 4
)

var tracer = otel.Tracer("diya-backend/internal/pipeline")

var validHexRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Analyzer is the layer 2 brand synthesis.
//
// note: fault injection point
type Analyzer interface {
	Analyze(ctx context.Context, input persona.Input) (persona.Analysis, error)
}

type Options struct {
	// download the chosen logo to sniff its real format and size
	ProbeLogo bool
}

type Extractor struct {
	site     *site.Client
	analyzer Analyzer
	time     chrono.API
	tel      telemetry.API
	options  Options

	duration metric.Float64Histogram
}

func NewExtractor(
	siteClient *site.Client,
	analyzer Analyzer,
	time chrono.API,
	tel telemetry.API,
	options Options,
) *Extractor {
	assert.NotNil(siteClient)
	assert.NotNil(analyzer)
	assert.NotNil(time)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("pipeline", tel)

	duration, err := otel.Meter("diya-backend/internal/pipeline").Float64Histogram(
		"diya.extract.duration",
		metric.WithDescription("time taken by each stage of a brand extraction"),
		metric.WithUnit("s"),
	)
	if err != nil {
		tel.ReportBroken(report_extractor_total, fmt.Errorf("create histogram: %w", err))
	}

	return &Extractor{
		site:     siteClient,
		analyzer: analyzer,
		time:     time,
		tel:      tel,
		options:  options,
		duration: duration,
	}
}

func (e *Extractor) recordStage(ctx context.Context, id, stage string, start time.Time) {
	elapsed := time.Since(start)
	e.tel.ReportCount(id, elapsed.Milliseconds())
	if e.duration != nil {
		e.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
	}
}

// layer1 is everything scraped from the website itself.
type layer1 struct {
	page        site.Page
	companyName string
	description string
	favicon     string
	logoURL     string
	pageText    string
	colors      []string
	fonts       []string
}

// Extract analyzes the website at `link`. Only a failure to load the page is an
// error, everything after it degrades to defaults.
func (e *Extractor) Extract(ctx context.Context, link string) (brand.BrandAssets, error) {
	ctx, span := tracer.Start(ctx, "pipeline.extract")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	start := time.Now()

	l1, err := e.scrape(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "layer 1 failed")
		return brand.BrandAssets{}, err
	}

	analysis := e.analyze(ctx, l1)
	assets := e.merge(ctx, l1, analysis)

	e.recordStage(ctx, report_extractor_total, "total", start)
	span.SetAttributes(
		attribute.String("company", assets.CompanyName),
		attribute.Int("colors", len(assets.Colors.AllColors)),
		attribute.Int("fonts", len(assets.Fonts)),
	)
	return assets, nil
}

func (e *Extractor) scrape(ctx context.Context, link string) (layer1, error) {
	ctx, span := tracer.Start(ctx, "pipeline.layer1")
	defer span.End()
	start := time.Now()

	page, err := e.site.FetchPage(ctx, link)
	if err != nil {
		return layer1{}, err
	}
	doc := page.Document
	base := page.Base()

	l1 := layer1{
		page:        page,
		companyName: extract.CompanyName(doc),
		description: extract.Description(doc),
		favicon:     extract.Favicon(doc, base),
		logoURL:     extract.Logo(doc, base),
		pageText:    extract.PageText(doc),
		colors:      extract.Colors(doc, page.HTML),
		fonts:       extract.Fonts(doc),
	}

	sheetColors, sheetFonts := e.stylesheetAssets(ctx, page)

	colorSet := color.NewSet()
	for _, c := range l1.colors {
		colorSet.Add(c)
	}
	for _, c := range sheetColors {
		colorSet.Add(c)
	}
	l1.colors = colorSet.List()

	fontList := font.NewList()
	for _, f := range l1.fonts {
		fontList.Add(f)
	}
	for _, f := range sheetFonts {
		fontList.Add(f)
	}
	l1.fonts = fontList.Families()

	e.recordStage(ctx, report_extractor_layer1, "layer1", start)
	e.tel.ReportDebug(
		"layer 1 done",
		l1.companyName,
		fmt.Sprintf("colors=%d fonts=%d", len(l1.colors), len(l1.fonts)),
	)
	return l1, nil
}

// stylesheetAssets returns the colors (boring ones last, capped) and fonts
// (capped) of the page's first-party stylesheets.
func (e *Extractor) stylesheetAssets(ctx context.Context, page site.Page) ([]string, []string) {
	sheets := e.site.FetchStylesheets(ctx, page.Document, page.Base())

	colors := color.NewSet()
	fonts := font.NewList()
	for _, sheet := range sheets {
		if sheet.CSS == "" {
			continue
		}
		for _, c := range color.FromStylesheet(sheet.CSS) {
			colors.Add(c)
		}
		for _, f := range font.FromCSS(sheet.CSS) {
			fonts.Add(f)
		}
	}

	families := fonts.Families()
	if len(families) > MAX_FONTS {
		families = families[:MAX_FONTS]
	}
	return color.SortBoring(colors.List(), extract.MAX_HTML_COLORS), families
}

func (e *Extractor) analyze(ctx context.Context, l1 layer1) persona.Analysis {
	ctx, span := tracer.Start(ctx, "pipeline.layer2")
	defer span.End()
	start := time.Now()

	analysis, err := e.analyzer.Analyze(ctx, persona.Input{
		CompanyName: l1.companyName,
		Description: l1.description,
		PageText:    l1.pageText,
		URL:         l1.page.FinalURL,
	})
	if err != nil {
		span.RecordError(err)
		e.tel.ReportWarning(report_extractor_layer2, fmt.Errorf("analysis failed: %w", err))
		analysis = persona.Analysis{}
	} else if analysis.Empty() {
		e.tel.ReportDebug(debug_empty_analysis, l1.companyName)
	}

	e.recordStage(ctx, report_extractor_layer2, "layer2", start)
	return analysis
}

func (e *Extractor) merge(ctx context.Context, l1 layer1, analysis persona.Analysis) brand.BrandAssets {
	colors := color.NewSet()
	for _, c := range l1.colors {
		colors.Add(c)
	}
	for _, c := range analysis.BrandColors {
		if validHexRegex.MatchString(c) {
			colors.Add(strings.ToUpper(c))
		}
	}
	allColors := colors.List()

	palette := color.BuildPalette(allColors, analysis.BrandColors)
	if len(allColors) > MAX_ALL_COLORS {
		allColors = allColors[:MAX_ALL_COLORS]
	}
	palette.AllColors = allColors

	assets := brand.BrandAssets{
		WebsiteURL:          l1.page.FinalURL,
		CompanyName:         l1.companyName,
		CompanySummary:      summary(analysis.CompanySummary, l1.description, l1.companyName),
		Logo:                e.logo(ctx, l1.logoURL),
		Colors:              palette,
		Fonts:               mergeFonts(l1.fonts, analysis.BrandFonts),
		FaviconURL:          l1.favicon,
		MetaDescription:     l1.description,
		ExtractionTimestamp: e.time.Now().Format(time.RFC3339),
		BrandVibe:           analysis.BrandVibe,
	}
	if assets.BrandVibe == nil {
		assets.BrandVibe = []string{}
	}

	if len(analysis.Strategy) == 0 {
		e.tel.ReportWarning(report_extractor_strategy, "no strategy from the model, using defaults", l1.companyName)
	}
	strategy := brand.StrategyFromRaw(analysis.Strategy)
	assets.Strategy = &strategy

	return assets
}

func summary(fromModel, description, companyName string) string {
	if fromModel != "" {
		return fromModel
	}
	if description != "" {
		return description
	}
	return "Analysis for " + companyName
}

// mergeFonts appends the model's fonts to the scraped ones and turns the first
// MAX_FONTS into FontInfo. The first font is the display font, the second the
// body font.
func mergeFonts(scraped []string, fromModel []string) []brand.FontInfo {
	list := font.NewList()
	for _, f := range scraped {
		list.Add(f)
	}
	scrapedCount := list.Len()
	for _, f := range fromModel {
		if font.IsGeneric(f) {
			continue
		}
		list.Add(f)
	}

	families := list.Families()
	if len(families) == 0 {
		family := DEFAULT_FONT
		if len(fromModel) > 0 {
			family = fromModel[0]
		}
		return []brand.FontInfo{{
			Family:   family,
			Source:   brand.FONT_SOURCE_AI_INFERRED,
			Category: font.Category(family, ""),
			Fallback: font.Fallback(family, ""),
		}}
	}
	if len(families) > MAX_FONTS {
		families = families[:MAX_FONTS]
	}

	fonts := make([]brand.FontInfo, len(families))
	for i, family := range families {
		style := "Body"
		if i == 0 {
			style = "Display"
		}
		source := brand.FONT_SOURCE_CSS
		if i >= scrapedCount {
			source = brand.FONT_SOURCE_AI_INFERRED
		}
		fonts[i] = brand.FontInfo{
			Family:    family,
			Style:     style,
			Source:    source,
			IsPrimary: i == 0,
			IsBody:    i == 1,
			Category:  font.Category(family, ""),
			Fallback:  font.Fallback(family, ""),
		}
	}
	return fonts
}

var alphaRegex = regexp.MustCompile(`^[a-z]+$`)

// LogoFormat guesses an image format from the extension of a url, "png" if
// there is no plausible extension.
func LogoFormat(link string) string {
	parts := strings.Split(link, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	ext = strings.SplitN(ext, "?", 2)[0]
	ext = strings.SplitN(ext, "#", 2)[0]
	if len(ext) > 4 || !alphaRegex.MatchString(ext) {
		return "png"
	}
	return ext
}

func (e *Extractor) logo(ctx context.Context, link string) *brand.ExtractedLogo {
	if link == "" {
		return nil
	}
	format := LogoFormat(link)
	logo := &brand.ExtractedLogo{
		URL:    link,
		Format: format,
		IsSVG:  strings.Contains(format, "svg"),
	}
	if !e.options.ProbeLogo {
		return logo
	}

	probe, err := e.site.ProbeLogo(ctx, link)
	if err != nil {
		e.tel.ReportDebug("logo probe failed", link, err)
		return logo
	}
	if probe.Format != "" {
		if probe.Format != logo.Format {
			e.tel.ReportWarning(report_extractor_logo, "logo extension does not match its content", link, probe.MIME)
		}
		logo.Format = probe.Format
		logo.IsSVG = probe.IsSVG
	}
	logo.Width = probe.Width
	logo.Height = probe.Height
	return logo
}

// ExtractAll extracts up to MAX_CONCURRENT_EXTRACTIONS websites at a time, the
// result is in the same order as `links`.
func (e *Extractor) ExtractAll(ctx context.Context, links []string) ([]brand.BrandAssets, []error) {
	assets := make([]brand.BrandAssets, len(links))
	errs := make([]error, len(links))

	group := errgroup.Group{}
	group.SetLimit(MAX_CONCURRENT_EXTRACTIONS)
	for i, link := range links {
		group.Go(func() error {
			assets[i], errs[i] = e.Extract(ctx, link)
			return nil
		})
	}
	group.Wait()
	return assets, errs
}
