// Package testutils provides testing utilities for the userbase API.
//
// It contains helpers for building valid user records, seeding a users
// file on disk and asserting HTTP responses from a running test server:
//
//	// Create a user with default values:
//	user := testutils.MustCreateUserForTest(t)
//
//	// Create a user with specific options:
//	user := testutils.MustCreateUserForTest(t,
//	    testutils.WithUserName("Ada"),
//	    testutils.WithUserAge(36),
//	)
//
//	// Seed a users file:
//	path := testutils.WriteUsersFile(t, t.TempDir(), user)
//
//	// Assert error response:
//	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "User not found")
package testutils
