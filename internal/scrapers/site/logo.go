package site

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// enough for the headers of every raster format image.DecodeConfig understands
const logoProbeBytes = 64 * 1024

type LogoProbe struct {
	MIME   string
	Format string
	IsSVG  bool
	Width  int
	Height int
}

// ProbeLogo downloads the beginning of a logo and sniffs its format and dimensions.
func (c *Client) ProbeLogo(ctx context.Context, link string) (LogoProbe, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.StylesheetTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("accept", "image/*,*/*;q=0.8").
		SetHeader("range", fmt.Sprintf("bytes=0-%d", logoProbeBytes-1)).
		Get(link)
	if err != nil {
		c.tel.ReportWarning(report_client_probe_logo, fmt.Errorf("fetch: %w", err), link)
		return LogoProbe{}, err
	}
	body := res.RawBody()
	defer body.Close()

	if res.IsError() {
		err := fmt.Errorf("logo probe: status %d", res.StatusCode())
		c.tel.ReportWarning(report_client_probe_logo, err, link)
		return LogoProbe{}, err
	}

	head, err := io.ReadAll(io.LimitReader(body, logoProbeBytes))
	if err != nil {
		c.tel.ReportWarning(report_client_probe_logo, fmt.Errorf("read: %w", err), link)
		return LogoProbe{}, err
	}

	return probeBytes(head), nil
}

func probeBytes(head []byte) LogoProbe {
	mime := mimetype.Detect(head)
	probe := LogoProbe{
		MIME:   mime.String(),
		Format: strings.TrimPrefix(mime.Extension(), "."),
		IsSVG:  mime.Is("image/svg+xml"),
	}
	if probe.IsSVG {
		probe.Format = "svg"
		return probe
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(head))
	if err == nil {
		probe.Width = cfg.Width
		probe.Height = cfg.Height
	}
	return probe
}
