package common

type contextKey string

// AuthInfoKey is the request context key the JWT middleware stores the
// validated claims under.
const AuthInfoKey = contextKey("authInfo")
