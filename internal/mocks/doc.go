// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock takes optional Fn overrides per method and
// falls back to configured default values.
package mocks
