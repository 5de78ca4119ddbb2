package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := EmptyDataset()
	wrapped := Wrap(base, "upload failed")

	if GetCode(wrapped) != CodeEmptyDataset {
		t.Errorf("Wrapping must keep the original code, got %s", GetCode(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Error("Wrapped error must unwrap to the original")
	}
}

func TestWrap_PlainErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), "save failed")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("Plain errors wrap as internal, got %s", GetCode(wrapped))
	}
}

func TestWrap_NilPassthrough(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrapping nil must return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf of nil must return nil")
	}
}

func TestGetCode_Unknown(t *testing.T) {
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Error("Non-app errors have no code")
	}
	if HasCode(nil, CodeEmptyDataset) {
		t.Error("nil carries no code")
	}
}

func TestIsLoadError(t *testing.T) {
	for _, err := range []error{EmptyDataset(), NoColumns(), Oversize(10, 5), UnsupportedEncoding()} {
		if !IsLoadError(err) {
			t.Errorf("%v should be a load error", err)
		}
	}
	if IsLoadError(InternalError("boom")) {
		t.Error("Internal errors are not load errors")
	}
}
