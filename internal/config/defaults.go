// Package config provides configuration loading and defaults for projscout.
package config

// DefaultConfigDir is the default location for projscout configuration.
const DefaultConfigDir = "~/.config/projscout"

// DefaultDBName is the filename for the scan history database.
const DefaultDBName = "projscout.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultChannel is the host channel whose settings directory holds the
// per-kind cache files.
const DefaultChannel = "projscout"

// DefaultMaxDepth is the walk depth bound applied when a kind does not set
// maxDepthRecursion. Negative means unlimited.
const DefaultMaxDepth = -1

// DefaultCacheEnabled controls whether located projects persist between
// sessions when the config file does not say otherwise.
const DefaultCacheEnabled = true

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
