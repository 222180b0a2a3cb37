// internal/app/system/limits/limits.go
package limits

// Request body size limits. These limits help prevent memory exhaustion
// from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxLogoSize is the maximum size for an uploaded module logo. The
	// console validates this client-side before submitting; the server
	// enforces it again.
	MaxLogoSize = 5 << 20 // 5 MB

	// MaxMultipartMemory is the in-memory buffer for multipart parsing.
	MaxMultipartMemory = 8 << 20 // 8 MB
)
