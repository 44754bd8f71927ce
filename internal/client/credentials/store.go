// Package credentials persists the single bearer credential of the client.
//
// The store holds at most one token. Get returns "" when nothing is stored.
// Nothing here talks to the network or inspects the token.
package credentials

import "context"

type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
