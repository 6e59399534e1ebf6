package pkgerror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		TypeValidation: "ERROR_TYPE_VALIDATION",
		TypeBusiness:   "ERROR_TYPE_BUSINESS",
		TypeServer:     "ERROR_TYPE_SERVER",
		TypeModel:      "ERROR_TYPE_MODEL",
		Type(99):       "ERROR_TYPE_UNKNOWN",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

func TestCodeString(t *testing.T) {
	cases := map[Code]string{
		CodeInvalidFormat:      "ERROR_CODE_INVALID_FORMAT",
		CodeConflict:           "ERROR_CODE_CONFLICT",
		CodeIllegalTransaction: "ERROR_CODE_ILLEGAL_TRANSACTION",
		CodeInconsistentLedger: "ERROR_CODE_INCONSISTENT_LEDGER",
		CodeInternal:           "ERROR_CODE_INTERNAL",
		Code(99):               "ERROR_CODE_INTERNAL",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("Code(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestModelErrors(t *testing.T) {
	root := errors.New("loans transaction A -> B is illegal for agent B")

	illegal := NewModel(root, CodeIllegalTransaction).(*Error)
	if !errors.Is(illegal, root) {
		t.Fatalf("expected model error to wrap root")
	}
	if got := illegal.Msg(); got != root.Error() {
		t.Fatalf("unexpected model msg: %q", got)
	}
	if got := illegal.StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected illegal status: %d", got)
	}

	inconsistent := NewModel(root, CodeInconsistentLedger).(*Error)
	if got := inconsistent.StatusCode(); got != http.StatusConflict {
		t.Fatalf("unexpected inconsistent status: %d", got)
	}
}

func TestBusinessAndValidationErrors(t *testing.T) {
	biz := NewBusiness("conflict", CodeConflict).(*Error)
	if got := biz.Error(); got != "conflict" {
		t.Fatalf("unexpected business error: %q", got)
	}
	if got := biz.StatusCode(); got != http.StatusConflict {
		t.Fatalf("unexpected business status: %d", got)
	}

	missing := NewNotFound(ErrNotFound).(*Error)
	if !errors.Is(missing, ErrNotFound) {
		t.Fatalf("expected not found to wrap ErrNotFound")
	}
	if got := missing.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("unexpected not found status: %d", got)
	}

	root := errors.New("bad")
	invalidInput := NewInvalidInput(root)
	if got := invalidInput.Error(); got != "bad" {
		t.Fatalf("unexpected invalid input error: %q", got)
	}
	if !errors.Is(invalidInput, root) {
		t.Fatalf("expected invalid input to wrap error")
	}

	invalidFormat := NewInvalidFormat().(*Error)
	if got := invalidFormat.Error(); got != "invalid request body" {
		t.Fatalf("unexpected invalid format error: %q", got)
	}
	if got := invalidFormat.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("unexpected invalid format status: %d", got)
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	cases := map[Type]string{
		TypeValidation: "Validation violation",
		TypeBusiness:   "Logical business not meet with requirement",
		TypeModel:      "Ledger model violation",
		TypeServer:     "Internal error",
	}
	for typ, want := range cases {
		e := new(nil, "", typ, CodeInternal).(*Error)
		if got := e.Error(); got != want {
			t.Fatalf("fallback for %s = %q, want %q", typ, got, want)
		}
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewBusiness("message", CodeNotFound).(*Error)
	str := err.String()
	for _, part := range []string{"ERROR_TYPE_BUSINESS", "ERROR_CODE_NOT_FOUND", "message"} {
		if !strings.Contains(str, part) {
			t.Fatalf("expected %q in string: %q", part, str)
		}
	}
}
