package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jkpaulin/BlackRhino/internal/pkg/pkglog"
)

type staticGenerator struct {
	value string
	calls int
}

func (g *staticGenerator) Generate() string {
	g.calls++
	return g.value
}

func TestMiddlewareCorrelationID(t *testing.T) {
	cases := []struct {
		name      string
		headers   map[string]string
		want      string
		wantCalls int
	}{
		{name: "correlation header", headers: map[string]string{HeaderCorrelationID: "cid-1"}, want: "cid-1"},
		{name: "request id fallback", headers: map[string]string{HeaderRequestID: "req-1"}, want: "req-1"},
		{name: "correlation wins", headers: map[string]string{HeaderCorrelationID: "cid-1", HeaderRequestID: "req-1"}, want: "cid-1"},
		{name: "blank header generates", headers: map[string]string{HeaderCorrelationID: "   "}, want: "generated", wantCalls: 1},
		{name: "missing generates", want: "generated", wantCalls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &staticGenerator{value: "generated"}

			var gotCID string
			wrapped := middlewareCorrelationID(gen)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCID = pkglog.GetCorrelationID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/agents", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if got := rec.Header().Get(HeaderCorrelationID); got != tc.want {
				t.Fatalf("response header = %q, want %q", got, tc.want)
			}
			if gotCID != tc.want {
				t.Fatalf("context cid = %q, want %q", gotCID, tc.want)
			}
			if gen.calls != tc.wantCalls {
				t.Fatalf("generator calls = %d, want %d", gen.calls, tc.wantCalls)
			}
		})
	}
}
