// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface; the Viper type backs it with
// a YAML/JSON file so tests can swap in a map-backed fake.
package pkgconfig
