package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "sarawak-tourism context key " + string(c)
}

// UserIDKey is the key for the authenticated user ID in context.Context
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the authenticated user's email in context.Context
const UserEmailKey = contextKey("userEmail")

// SessionTokenKey is the key for the session token that authenticated the request
const SessionTokenKey = contextKey("sessionToken")

// RequestIDKey is the key for the request ID assigned by the requestid middleware
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the component name used by the logger
const ComponentKey = contextKey("component")

// OperationKey is the key for the operation name used by the logger
const OperationKey = contextKey("operation")
