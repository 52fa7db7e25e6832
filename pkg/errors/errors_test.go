package errors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// captureHandler records every reported error for inspection.
type captureHandler struct {
	reported []*ReelError
}

func (h *captureHandler) Handle(err *ReelError) {
	h.reported = append(h.reported, err)
}

func TestReelError_Error(t *testing.T) {
	err := &ReelError{
		Op:   "remote.Bridge.writePump",
		Kind: KindTransport,
		Err:  errors.New("connection reset"),
	}
	got := err.Error()
	for _, want := range []string{"remote.Bridge.writePump", "transport", "connection reset"} {
		if !strings.Contains(got, want) {
			t.Errorf("error string %q should contain %q", got, want)
		}
	}
}

func TestReelError_ErrorWithSource(t *testing.T) {
	err := &ReelError{
		Op:     "remote.Bridge.readPump",
		Kind:   KindTransport,
		Source: "client-42",
		Err:    errors.New("bad frame"),
	}
	if got, want := err.Error(), "source=client-42"; !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestReelError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := New("op", KindConfig, inner)
	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlayback, "playback"},
		{KindTransport, "transport"},
		{KindConfig, "config"},
		{KindHost, "host"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestReport_SetsTimestamp(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&ReelError{Op: "op", Kind: KindHost, Err: errors.New("x")})

	if len(h.reported) != 1 {
		t.Fatalf("reported: got %d, want 1", len(h.reported))
	}
	if h.reported[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}
}

func TestReport_PreservesTimestamp(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	Report(&ReelError{Op: "op", Kind: KindHost, Err: errors.New("x"), Timestamp: ts})

	if !h.reported[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp: got %v, want %v", h.reported[0].Timestamp, ts)
	}
}

func TestReport_NilIsNoop(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(nil)
	if len(h.reported) != 0 {
		t.Errorf("reported: got %d, want 0", len(h.reported))
	}
}

func TestAddHandler_ChainOrder(t *testing.T) {
	var order []string
	SetHandler(HandlerFunc(func(*ReelError) { order = append(order, "first") }))
	defer SetHandler(nil)
	AddHandler(HandlerFunc(func(*ReelError) { order = append(order, "second") }))

	Report(New("op", KindUnknown, errors.New("x")))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handler order: got %v, want [first second]", order)
	}
}

func TestRecover_ReportsPanic(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
		panic("boom")
	}()

	if len(h.reported) != 1 {
		t.Fatalf("reported: got %d, want 1", len(h.reported))
	}
	got := h.reported[0]
	if got.Kind != KindPanic {
		t.Errorf("kind: got %v, want panic", got.Kind)
	}
	if got.Op != "test.op" {
		t.Errorf("op: got %q, want test.op", got.Op)
	}
	if !strings.Contains(got.Err.Error(), "boom") {
		t.Errorf("error %q should contain the panic value", got.Err)
	}
	if got.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	var recovered any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { recovered = r })
		panic("boom")
	}()

	if recovered != "boom" {
		t.Errorf("callback value: got %v, want boom", recovered)
	}
}

func TestRecover_NoPanicReportsNothing(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
	}()

	if len(h.reported) != 0 {
		t.Errorf("reported: got %d, want 0", len(h.reported))
	}
}
