// Package config loads and validates the service configuration.
//
// Configuration is a single JSON file validated against an embedded
// JSON schema before it is decoded, so malformed or mistyped settings
// fail at startup with a field-level message instead of surfacing as
// runtime misbehavior. Secrets are never read from the file: the LLM
// API key comes from the environment.
package config
