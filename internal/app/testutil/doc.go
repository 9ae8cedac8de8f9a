// Package testutil provides shared test doubles and database helpers.
//
// The mocks are configurable per input so tests can script failures for
// specific files, questions or attempts without touching real engines.
package testutil
