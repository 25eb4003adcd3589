// Package mocks provides shared test doubles for the store, auth and events
// interfaces.
//
// Stores are mocked with testify/mock (TestifyMock*Store) so tests can assert
// exact calls. Services with one or two methods use function fields with
// defaults instead:
//
//	tokens := &mocks.MockTokenService{
//	    VerifyTokenFn: func(ctx context.Context, token string) (auth.Identity, bool) {
//	        return auth.Identity{UserID: id, Username: "alice"}, token == "good"
//	    },
//	}
package mocks
