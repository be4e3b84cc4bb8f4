package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "loading product")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestAsFindsTypedError(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "product not found")
	wrapped := Wrap(CodeDependency, inner, "catalog lookup")

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeDependency {
		t.Fatalf("expected outermost code, got %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	t.Parallel()

	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %+v", typed)
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("disk full")
	err := Wrap(CodeDependency, cause, "persist product")

	info := Dump(err)
	if info.Code != string(CodeDependency) {
		t.Fatalf("unexpected code: %s", info.Code)
	}
	if len(info.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(info.Chain))
	}
}
