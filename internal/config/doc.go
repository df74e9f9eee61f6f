// Package config provides centralized configuration management for the
// S-phase analysis pipeline. It handles loading configuration from multiple
// sources, validation, and the resolution of the output artifact tree.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// A .env file in the working directory is folded into the environment
// before processing, so classroom setups can keep the sheet URL and API key
// out of the shell profile.
//
// # Environment Variables
//
// All environment variables follow the pattern SPHASE_* for namespacing:
//
//	SPHASE_SOURCE_MODE=url
//	SPHASE_SOURCE_URL=https://docs.google.com/spreadsheets/.../pub?output=csv
//	SPHASE_SOURCE_API_KEY=...
//	SPHASE_OUTPUT_DIR=reports
//	SPHASE_LOGGING_LEVEL=info
//
// # Validation
//
// The merged configuration is validated with struct tags (source mode must
// be one of url/sheets/xlsx, sheets mode requires a sheet ID and API key,
// xlsx mode requires a snapshot path) plus a cross-field check that url
// mode actually carries a URL.
package config
