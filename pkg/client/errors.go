package client

// The error types here let callers branch on failure class instead of
// string-matching server messages.

// NetworkError wraps transport failures: DNS, refused connections,
// timeouts. Retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError means the session is missing, invalid or expired. The caller
// must re-authenticate.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// PermissionError means the session is valid but the role does not grant
// the operation.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return e.Message
}

// ValidationError means the server rejected the request payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

// ServerError covers everything else the server returned.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server error"
	}
	return e.Message
}
