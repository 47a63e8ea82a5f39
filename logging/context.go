package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugModeKey struct{}

// EnableDebugMode marks ctx so that CDebug* calls made with it are logged whatever the logger's
// level. An empty tag is replaced with a short random one that identifies the request.
func EnableDebugMode(ctx context.Context, tag string) context.Context {
	if tag == "" {
		tag = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugModeKey{}, tag)
}

// DebugModeTag returns the tag given to EnableDebugMode, or "" when ctx is not in debug mode.
func DebugModeTag(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tag, _ := ctx.Value(debugModeKey{}).(string)
	return tag
}

// IsDebugMode reports whether ctx was marked with EnableDebugMode.
func IsDebugMode(ctx context.Context) bool {
	return DebugModeTag(ctx) != ""
}
