// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available for store.UserStore:
//
//   - MockUserStore keeps the collection in memory and records every save.
//     Function fields override individual methods to inject failures.
//   - TestifyMockUserStore is a testify/mock mock for tests that assert on
//     exact call sequences.
//
// Usage:
//
//	userStore := mocks.NewMockUserStore()
//	userStore.SaveFn = func(ctx context.Context, users []domain.User) error {
//	    return store.NewWriteError("user", "disk full", nil)
//	}
package mocks
