package xhttp

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"oss.terrastruct.com/cmdlog"
)

var englishPrinter = message.NewPrinter(language.English)

// Bytes formats n with thousands separators, e.g. 1,048,576.
func Bytes(n int) string {
	return englishPrinter.Sprint(n)
}

type responseWriter struct {
	rw http.ResponseWriter

	written  bool
	hijacked bool
	status   int
	length   int
}

var _ interface {
	http.ResponseWriter
	http.Hijacker
	http.Flusher
	writtenResponseWriter
} = &responseWriter{}

func (rw *responseWriter) Header() http.Header {
	return rw.rw.Header()
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.written = true
		rw.status = statusCode
	}
	rw.rw.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if !rw.written && len(p) > 0 {
		rw.written = true
		if rw.status == 0 {
			rw.status = http.StatusOK
		}
	}
	rw.length += len(p)
	return rw.rw.Write(p)
}

// Hijack is needed for websocket upgrades.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.rw.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("underlying response writer does not implement http.Hijacker: %T", rw.rw)
	}
	c, brw, err := hj.Hijack()
	if err == nil {
		rw.hijacked = true
	}
	return c, brw, err
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.rw.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Written() bool {
	return rw.written || rw.hijacked
}

// Log logs every request served by next with its status, size and duration
// and turns panics into 500s.
func Log(clog *cmdlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec != nil {
				clog.Error.Printf("caught panic: %#v\n%s", rec, debug.Stack())
				JSON(clog, w, http.StatusInternalServerError, map[string]interface{}{
					"error": http.StatusText(http.StatusInternalServerError),
				})
			}
		}()

		rw := &responseWriter{
			rw: w,
		}

		start := time.Now()
		next.ServeHTTP(rw, r)
		dur := time.Since(start)

		if rw.hijacked {
			clog.Success.Printf("%s %s %v: hijacked", r.Method, r.URL, dur)
			return
		}
		if !rw.written {
			clog.Warn.Printf("%s %s %v: no response written", r.Method, r.URL, dur)
			return
		}

		var statusLogger *log.Logger
		switch {
		case rw.status < 300:
			statusLogger = clog.Success
		case rw.status < 400:
			statusLogger = clog.Info
		case rw.status < 500:
			statusLogger = clog.Warn
		default:
			statusLogger = clog.Error
		}
		statusLogger.Printf("%s %s %d %sB %v", r.Method, r.URL, rw.status, Bytes(rw.length), dur)
	})
}
