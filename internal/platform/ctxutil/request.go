package ctxutil

import "context"

type requestDataKey struct{}

// RequestData is the caller identity attached by the auth middleware.
type RequestData struct {
	Subject string
	Role    string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
