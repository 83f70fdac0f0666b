//go:build !amd64 && !arm64

package warp

// Other architectures use the tree reduction. It is within a small factor
// of the stdlib software count and avoids per-platform tuning.
var hasPopCount = false
