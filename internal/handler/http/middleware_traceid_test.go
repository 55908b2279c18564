package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTraceID_GeneratesHeader(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := doRequest(t, router, http.MethodGet, "/healthz", nil)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_EchoesProvidedHeader(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := newRequestWithHeader(http.MethodGet, "/healthz", traceIDHeader, "trace-42")
	rec := serve(router, req)

	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}
