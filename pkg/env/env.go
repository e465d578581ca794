// Package env reads process environment values needed before the main
// envconfig-driven configuration is loaded, such as bootstrap logger
// settings.
package env

import "os"

// Get returns the named variable's value, or fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
