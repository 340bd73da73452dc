package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

// Namespace is the settings namespace shared with Project Manager hosts.
// All locator keys live beneath it: <Namespace>.<kind>.baseFolders,
// <Namespace>.<kind>.ignoredFolders, <Namespace>.<kind>.maxDepthRecursion,
// and the global <Namespace>.cacheProjectsBetweenSessions.
const Namespace = "projectManager"

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Provider reads projscout configuration through viper and hands out
// per-kind locator snapshots. It implements locator.ConfigSource.
type Provider struct {
	v       *viper.Viper
	cfgFile string
}

// NewProvider builds a Provider bound to the given config file, or to the
// default location when cfgFile is empty. A missing config file is not an
// error; defaults apply.
func NewProvider(cfgFile string) (*Provider, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("channel", DefaultChannel)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault(Namespace+".cacheProjectsBetweenSessions", DefaultCacheEnabled)

	if cfgFile != "" {
		v.SetConfigFile(pathutil.Expand(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	p := &Provider{v: v, cfgFile: cfgFile}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the config file so external edits become visible. A
// missing file is not an error.
func (p *Provider) Reload() error {
	if err := p.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}

// LocatorConfig returns the current snapshot for one kind. The file is
// re-read first so that RefreshConfig observes external edits; on a read
// error the last good values stay in effect. Base folder entries keep any
// leading ~, which the locator expands at walk time.
func (p *Provider) LocatorConfig(kind string) locator.Config {
	_ = p.Reload()

	prefix := Namespace + "." + kind + "."
	cfg := locator.Config{
		BaseFolders:    p.v.GetStringSlice(prefix + "baseFolders"),
		IgnoredFolders: p.v.GetStringSlice(prefix + "ignoredFolders"),
		MaxDepth:       DefaultMaxDepth,
		CacheEnabled:   p.v.GetBool(Namespace + ".cacheProjectsBetweenSessions"),
	}
	if key := prefix + "maxDepthRecursion"; p.v.IsSet(key) {
		cfg.MaxDepth = p.v.GetInt(key)
	}
	return cfg
}

// ConfiguredKinds returns the kinds that have base folders configured,
// sorted alphabetically. Viper stores keys lowercased, so the namespace and
// field names are matched in their lowercase form.
func (p *Provider) ConfiguredKinds() []string {
	settings, ok := p.v.AllSettings()[strings.ToLower(Namespace)].(map[string]any)
	if !ok {
		return nil
	}
	var kinds []string
	for kind, raw := range settings {
		section, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, has := section["basefolders"]; has {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// Channel returns the host channel name used to derive the cache file
// location.
func (p *Provider) Channel() string {
	return p.v.GetString("channel")
}

// Output returns the output preferences.
func (p *Provider) Output() Output {
	return Output{
		Color: p.v.GetBool("output.color"),
		Width: p.v.GetInt("output.width"),
	}
}

// ConfigFileUsed returns the config file viper resolved, or "" when none
// was found.
func (p *Provider) ConfigFileUsed() string {
	return p.v.ConfigFileUsed()
}

// DBPath returns the full path to the scan history database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return pathutil.Expand(DefaultConfigDir)
}
