package webhook

// SecurityConfig holds webhook ingress security settings.
type SecurityConfig struct {
	// Secret enables HMAC-SHA256 signature verification. When empty,
	// unsigned deliveries are accepted.
	Secret          string
	RateLimitPerMin int // Max requests per minute per source
}
