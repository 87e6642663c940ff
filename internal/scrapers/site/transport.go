package site

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// decodingTransport advertises brotli and gzip and transparently decodes either.
// Setting accept-encoding by hand turns off the decompression net/http would do
// on its own, so both encodings are handled here.
type decodingTransport struct {
	inner http.RoundTripper
}

func newDecodingTransport(inner http.RoundTripper) decodingTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return decodingTransport{inner: inner}
}

type decodedBody struct {
	io.Reader
	closer io.Closer
}

func (b decodedBody) Close() error {
	return b.closer.Close()
}

func (t decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("accept-encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("accept-encoding", "br, gzip")
	}

	res, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(res.Header.Get("content-encoding"))) {
	case "br":
		reader = brotli.NewReader(res.Body)
	case "gzip":
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			res.Body.Close()
			return nil, err
		}
		reader = gz
	default:
		return res, nil
	}

	res.Body = decodedBody{Reader: reader, closer: res.Body}
	res.Header.Del("content-encoding")
	res.Header.Del("content-length")
	res.ContentLength = -1
	res.Uncompressed = true
	return res, nil
}
