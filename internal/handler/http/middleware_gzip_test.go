// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	gr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer gr.Close()
	out, err := io.ReadAll(gr)
	require.NoError(t, err)
	return string(out)
}

func htmlHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, body)
	})
}

func TestGZip(t *testing.T) {
	const body = "<p>Capability assessment</p>"

	tests := []struct {
		name           string
		acceptEncoding string
		wantGzipped    bool
	}{
		{name: "client accepts gzip", acceptEncoding: "gzip", wantGzipped: true},
		{name: "client does not accept gzip", acceptEncoding: "", wantGzipped: false},
		{name: "gzip among several encodings", acceptEncoding: "deflate, gzip, br", wantGzipped: true},
		{name: "gzip with quality values", acceptEncoding: "gzip;q=1.0, identity;q=0.5", wantGzipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()

			withGZip(htmlHandler(body)).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
				assert.Equal(t, body, gunzip(t, rr.Body.Bytes()))
				return
			}
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, body, rr.Body.String())
		})
	}
}

func TestGZip_DecompressesRequestBody(t *testing.T) {
	form := "username=alice&password=secret"

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		assert.EqualValues(t, -1, r.ContentLength)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, r.Body.Close())
		got = string(data)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(gzipBytes(t, []byte(form))))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, form, got)
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/assess", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, called)
}

func TestGZip_SkipsImages(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/chart.png", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, png, rr.Body.Bytes())
}

func TestGZip_NoContentIsNotCompressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestGZip_SniffsContentTypeOnImplicitWrite(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<!DOCTYPE html><html></html>")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html"))
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestGZip_ConcurrentRequests(t *testing.T) {
	body := strings.Repeat("communication teamwork leadership ", 50)
	middleware := withGZip(htmlHandler(body))

	const n = 20
	responses := make([][]byte, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/history", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()

			middleware.ServeHTTP(rr, req)
			responses[i] = rr.Body.Bytes()
		}(i)
	}
	wg.Wait()

	for _, compressed := range responses {
		assert.Less(t, len(compressed), len(body))
		assert.Equal(t, body, gunzip(t, compressed))
	}
}

func TestWrappedReadCloser_Close(t *testing.T) {
	closed := false
	rc := &wrappedReadCloser{Reader: strings.NewReader("x"), OnClose: func() { closed = true }}
	assert.NoError(t, rc.Close())
	assert.True(t, closed)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("x")}).Close())
}
