package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool recycles gzip writers across responses. A writer taken
// from the pool must be Reset onto the new destination before use.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// gzipReaderPool recycles gzip readers across request bodies.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip is an HTTP middleware for transparent gzip support in both
// directions.
//
// A request with "Content-Encoding: gzip" has its body replaced by a
// decompressing reader. Invalid gzip data is answered with 400 Bad Request
// before the handler runs.
//
// When the client sends "Accept-Encoding: gzip" the response is compressed
// through a pooled [gzip.Writer]. Responses without a body (204, 304) are
// written plain. Every response carries "Vary: Accept-Encoding".
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			gzipReader := gzipReaderPool.Get().(*gzip.Reader)
			if err := gzipReader.Reset(req.Body); err != nil {
				gzipReaderPool.Put(gzipReader)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			req.Body = &wrappedReadCloser{
				Reader: gzipReader,
				OnClose: func() {
					gzipReader.Close()
					gzipReaderPool.Put(gzipReader)
				},
			}
			req.Header.Del("Content-Encoding")
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		gzipWriter := gzipWriterPool.Get().(*gzip.Writer)
		gzipWriter.Reset(w)
		defer gzipWriterPool.Put(gzipWriter)

		gzipRW := &gzipResponseWriter{
			ResponseWriter: w,
			gzipWriter:     gzipWriter,
		}

		next.ServeHTTP(gzipRW, req)

		gzipRW.Close()
	})
}

// wrappedReadCloser adapts a decompressing reader to [io.ReadCloser]. OnClose
// returns the reader to its pool.
type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

// gzipResponseWriter routes body writes through gzipWriter once the status
// is known to allow a body.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer

	wroteHeader bool
	compressing bool
}

// WriteHeader decides whether the response is compressed and forwards
// statusCode once.
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if statusCode != http.StatusNoContent && statusCode != http.StatusNotModified {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.compressing = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.compressing {
		return w.ResponseWriter.Write(data)
	}
	return w.gzipWriter.Write(data)
}

// Close flushes the gzip stream. It is a no-op when nothing was compressed.
func (w *gzipResponseWriter) Close() error {
	if !w.compressing {
		return nil
	}
	return w.gzipWriter.Close()
}
