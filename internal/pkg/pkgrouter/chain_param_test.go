package pkgrouter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestChainOrder(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !reflect.DeepEqual(order, []string{"outer", "inner", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestLimitBody(t *testing.T) {
	var readErr error
	h := LimitBody(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abc")))
	if readErr != nil {
		t.Fatalf("body under limit: %v", readErr)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcdef")))
	if readErr == nil {
		t.Fatal("expected error reading body over limit")
	}
}

func TestGetParam(t *testing.T) {
	params := httprouter.Params{{Key: "id", Value: "bank-1"}, {Key: "handle", Value: "42"}, {Key: "bad", Value: "x"}}
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, params)

	if got := GetParam(ctx, "id"); got != "bank-1" {
		t.Fatalf("GetParam(id) = %q", got)
	}
	if got, err := GetParamInt64(ctx, "handle"); err != nil || got != 42 {
		t.Fatalf("GetParamInt64(handle) = %d, %v", got, err)
	}
	if _, err := GetParamInt64(ctx, "bad"); err == nil {
		t.Fatal("expected error for non-numeric param")
	}
}
