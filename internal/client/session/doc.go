// Package session derives the authentication state of the client from the
// stored bearer credential.
//
// Decode reads the token payload without verifying the signature: the
// backend is the only authority on validity, the client just needs the
// subject, role and expiry to decide what to show. Manager owns the derived
// state, re-checks expiry on every read and keeps the credential store in
// step with it: whenever the session becomes logged out, the stored
// credential is cleared.
package session
