// Package config loads the handful of settings spec §6 calls a "config
// file" and merges them with CLI flags to build a domain.Context. Grounded
// on the teacher's internal/config/loader.go precedence-merging pattern,
// scaled down to the keys original_source/src/config.rs's Config struct
// defines.
package config

// File is the on-disk shape of .winstowrc / winstow/config.toml: the five
// keys spec §6 names, nothing else.
type File struct {
	DefaultDir    string   `mapstructure:"default-dir" toml:"default-dir"`
	DefaultTarget string   `mapstructure:"default-target" toml:"default-target"`
	Ignore        []string `mapstructure:"ignore" toml:"ignore"`
	Defer         []string `mapstructure:"defer" toml:"defer"`
	Verbose       bool     `mapstructure:"verbose" toml:"verbose"`
}
