package transport

import (
	"context"
	"fmt"

	"github.com/relayout-dev/relayout/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to server error responses. The server continues to
// accept new requests after a panic is recovered.
func Recovery() Middleware {
	return func(next TextConverter) TextConverter {
		return TextConverterFunc(func(ctx context.Context, req *api.ConvertRequest) (result *api.ConvertResult, retErr error) {
			defer func() {
				if r := recover(); r != nil {
					result = nil
					retErr = api.NewServerError(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.ConvertText(ctx, req)
		})
	}
}
