// Package config loads, normalizes, and validates ytshorts configuration.
//
// It supplies defaults, reads an optional TOML file, applies YTSHORTS_*
// environment overrides and derives the per-kind working directories from
// the data dir. Downstream code should read settings only through Config so
// it sees expanded absolute paths and canonical logging values.
package config
