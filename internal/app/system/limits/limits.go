// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits. These keep a single request from exhausting
// memory while JSON is decoded.
const (
	// MaxJSONBody caps ordinary API request bodies.
	MaxJSONBody = 64 << 10 // 64 KB

	// MaxContentBody caps bodies that carry rich text (minutes, event
	// descriptions).
	MaxContentBody = 1 << 20 // 1 MB
)

// Body returns middleware that rejects request bodies larger than n bytes.
// Decoding an oversized body fails, which handlers report as malformed JSON.
func Body(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
