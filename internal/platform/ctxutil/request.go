package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/rentals-backend/internal/domain/user"
)

type requestDataKey struct{}

// RequestData identifies the authenticated caller of a request. Anonymous
// requests carry no RequestData at all.
type RequestData struct {
	UserID   uuid.UUID
	Username string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Identity returns the caller stored on ctx, or the anonymous identity.
func Identity(ctx context.Context) user.Identity {
	rd := GetRequestData(ctx)
	if rd == nil {
		return user.Anonymous()
	}
	return user.Identity{UserID: rd.UserID, Username: rd.Username}
}
