package common

const (
	// CredentialKey is the single storage slot holding the bearer token.
	CredentialKey = "token"

	// UsernameKey stores the login name of the last successful login.
	UsernameKey = "username"

	// AuthorizationHeader and BearerPrefix form the outbound credential header.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// WipeByteArray zeroes b in place. Used for password buffers read from the
// terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
