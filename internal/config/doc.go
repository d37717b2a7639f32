// Package config defines the application configuration structure and loads
// it from the environment. Loading fails fast on missing or invalid
// required settings so the process never starts half-configured.
package config
