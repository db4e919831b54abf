package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/relayout-dev/relayout/pkg/api"
)

// echoConverter returns the request text unchanged.
func echoConverter() TextConverter {
	return TextConverterFunc(func(_ context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
		return api.NewConvertResult(req.Text), nil
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next TextConverter) TextConverter {
			return TextConverterFunc(func(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
				order = append(order, name)
				return next.ConvertText(ctx, req)
			})
		}
	}

	handler := Chain(mw("a"), mw("b"), mw("c"))(echoConverter())
	if _, err := handler.ConvertText(context.Background(), &api.ConvertRequest{Text: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("middleware invocations = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("middleware invocations = %v, want %v", order, want)
		}
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	inner := TextConverterFunc(func(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
		seen = RequestIDFromContext(ctx)
		return api.NewConvertResult(req.Text), nil
	})

	handler := RequestID()(inner)
	if _, err := handler.ConvertText(context.Background(), &api.ConvertRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == "" {
		t.Error("no request ID was generated")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	var seen string
	inner := TextConverterFunc(func(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
		seen = RequestIDFromContext(ctx)
		return api.NewConvertResult(req.Text), nil
	})

	handler := RequestID()(inner)
	ctx := ContextWithRequestID(context.Background(), "client-supplied")
	if _, err := handler.ConvertText(ctx, &api.ConvertRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "client-supplied" {
		t.Errorf("request ID = %q, want \"client-supplied\"", seen)
	}
}

func TestRecovery(t *testing.T) {
	panicking := TextConverterFunc(func(context.Context, *api.ConvertRequest) (*api.ConvertResult, error) {
		panic("boom")
	})

	handler := Recovery()(panicking)
	result, err := handler.ConvertText(context.Background(), &api.ConvertRequest{})
	if result != nil {
		t.Errorf("result = %v, want nil after recovered panic", result)
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *api.APIError", err)
	}
	if apiErr.Type != api.ErrorTypeServerError {
		t.Errorf("error type = %q, want %q", apiErr.Type, api.ErrorTypeServerError)
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		err  *api.APIError
		want int
	}{
		{api.NewInvalidRequestError("from", "bad"), 400},
		{api.NewUnknownLayoutError("to", "azerty"), 400},
		{api.NewNotFoundError("gone"), 404},
		{api.NewTooManyRequestsError("slow down"), 429},
		{api.NewServerError("boom"), 500},
		{&api.APIError{Type: "unheard_of"}, 500},
	}

	for _, tt := range tests {
		if got := HTTPStatusFromError(tt.err); got != tt.want {
			t.Errorf("HTTPStatusFromError(%s) = %d, want %d", tt.err.Type, got, tt.want)
		}
	}
}
