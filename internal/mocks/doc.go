// Package mocks provides hand-written test doubles for the store, service,
// auth, and generation interfaces. Each mock exposes per-method Fn fields;
// a nil Fn falls back to the mock's default return values.
package mocks
