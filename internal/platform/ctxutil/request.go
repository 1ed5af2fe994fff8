package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData travels with every request. The request middleware sets the ids;
// the auth middleware fills in the caller.
type RequestData struct {
	RequestID string
	TraceID   string

	UserID   uuid.UUID
	Username string
	TokenID  uuid.UUID
}

// Authenticated reports whether a caller has been attached.
func (rd *RequestData) Authenticated() bool {
	return rd != nil && rd.UserID != uuid.Nil
}

// LogFields returns the ids worth attaching to a log line.
func (rd *RequestData) LogFields() []interface{} {
	if rd == nil {
		return nil
	}
	fields := make([]interface{}, 0, 6)
	if rd.RequestID != "" {
		fields = append(fields, "request_id", rd.RequestID)
	}
	if rd.TraceID != "" {
		fields = append(fields, "trace_id", rd.TraceID)
	}
	if rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String())
	}
	return fields
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

// WithCaller returns ctx carrying a copy of its request data with the caller set.
// The ids of the incoming request are kept.
func WithCaller(ctx context.Context, userID uuid.UUID, username string, tokenID uuid.UUID) context.Context {
	next := RequestData{}
	if rd := GetRequestData(ctx); rd != nil {
		next = *rd
	}
	next.UserID, next.Username, next.TokenID = userID, username, tokenID
	return WithRequestData(ctx, &next)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	rd, ok := ctx.Value(requestDataKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
