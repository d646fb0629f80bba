package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidSymbol, "unknown icon %q", "FaCobol"), `INVALID_SYMBOL: unknown icon "FaCobol"`},
		{Wrap(ErrCodeNetwork, cause, "dial %s", "mongo"), "NETWORK_ERROR: dial mongo: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := errors.New("connection refused")
	inner := Wrap(ErrCodeNetwork, cause, "dial mongo")
	outer := fmt.Errorf("load deck: %w", Wrap(ErrCodeInternal, inner, "startup"))

	if !errors.Is(outer, cause) {
		t.Error("cause lost in chain")
	}
	if !errors.Is(outer, ErrCodeNetwork) {
		t.Error("stdlib errors.Is did not find the inner code")
	}
	if Is(outer, ErrCodeNetwork) {
		t.Error("Is matched an inner code")
	}
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is missed the outermost code")
	}
	if got := UserMessage(outer); got != "startup" {
		t.Errorf("UserMessage = %q, want startup", got)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeEmptyContent, "no cards"), ErrCodeEmptyContent},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", New(ErrCodeInvalidIndex, "bad")), ErrCodeInvalidIndex},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeStatus(t *testing.T) {
	tests := map[Code]int{
		ErrCodeInvalidIndex:    http.StatusBadRequest,
		ErrCodeEmptyContent:    http.StatusBadRequest,
		ErrCodeSessionNotFound: http.StatusNotFound,
		ErrCodeSessionClosed:   http.StatusGone,
		ErrCodeUnsupported:     http.StatusTooManyRequests,
		ErrCodeTimeout:         http.StatusGatewayTimeout,
		ErrCodeNetwork:         http.StatusBadGateway,
		ErrCodeInternal:        http.StatusInternalServerError,
		"":                     http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := code.Status(); got != want {
			t.Errorf("%q.Status() = %d, want %d", code, got, want)
		}
	}
}

func TestCodeTemporary(t *testing.T) {
	for _, c := range []Code{ErrCodeNetwork, ErrCodeTimeout} {
		if !c.Temporary() {
			t.Errorf("%s not temporary", c)
		}
	}
	if ErrCodeInvalidInput.Temporary() {
		t.Error("INVALID_INPUT reported temporary")
	}
}

func TestUserMessagePlain(t *testing.T) {
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage = %q", got)
	}
}
