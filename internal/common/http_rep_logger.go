package common

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"

	"go.uber.org/zap"
)

var redactedHeaders = []string{"Apikey", "Authorization"}

// LogHTTPRequest returns a hook that dumps outgoing requests at debug
// level with credential headers redacted.
func LogHTTPRequest(logger *zap.Logger) func(req *http.Request) {
	return func(req *http.Request) {
		if !logger.Core().Enabled(zap.DebugLevel) {
			return
		}

		// Make a copy of the body if it exists
		var bodyCopy []byte
		if req.Body != nil {
			bodyCopy, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
		}

		clone := req.Clone(req.Context())
		for _, h := range redactedHeaders {
			if clone.Header.Get(h) != "" {
				clone.Header.Set(h, "[redacted]")
			}
		}
		if bodyCopy != nil {
			clone.Body = io.NopCloser(bytes.NewReader(bodyCopy))
		}

		dump, err := httputil.DumpRequestOut(clone, true)
		if err != nil {
			logger.Debug("Failed to dump HTTP request", zap.Error(err))
		} else {
			logger.Debug("HTTP request", zap.ByteString("dump", dump))
		}

		// Reset the body again for the real send
		if bodyCopy != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
		}
	}
}
