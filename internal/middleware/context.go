package middleware

import "github.com/labstack/echo/v4"

// Context keys under which authentication and tracing metadata is stored.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// OperatorID returns the authenticated operator id, empty when unauthenticated.
func OperatorID(c echo.Context) string {
	return stringValue(c, ContextKeyUserID)
}

// OperatorRole returns the role claim of the authenticated operator.
func OperatorRole(c echo.Context) string {
	return stringValue(c, ContextKeyUserRole)
}

// RequestIDFromContext returns the request identifier assigned by RequestID.
func RequestIDFromContext(c echo.Context) string {
	return stringValue(c, ContextKeyRequestID)
}

func stringValue(c echo.Context, key string) string {
	if val, ok := c.Get(key).(string); ok {
		return val
	}
	return ""
}
