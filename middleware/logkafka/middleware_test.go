package logkafka

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteLogToKafkaWithoutWriter(t *testing.T) {
	kafkaWriter = nil
	if err := WriteLogToKafka(context.Background(), []byte("{}")); err != ErrNoWriter {
		t.Fatalf("err = %v, want ErrNoWriter", err)
	}
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)

	if rw.statusCode != http.StatusNotFound {
		t.Fatalf("captured status = %d, want %d", rw.statusCode, http.StatusNotFound)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("underlying status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	// With no Kafka writer configured the middleware logs locally and must
	// not alter the response.
	kafkaWriter = nil

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/rides", nil)
	req.Header.Set("X-Trace-ID", "test-trace")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != `{"success":true}` {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
