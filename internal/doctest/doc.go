// Package doctest holds tests that keep the package documentation in sync
// with the exported API.
package doctest
