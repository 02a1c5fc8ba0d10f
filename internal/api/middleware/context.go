package middleware

// contextKey is a private type for request-scoped context values.
type contextKey string
