package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigTurnLimit        = "turn-limit"
	ConfigMaxChainsPerCard = "max-chains-per-card"
	ConfigSeed             = "seed"
	ConfigDealFile         = "deal-file"
	ConfigFixture          = "fixture"
	ConfigBatchGames       = "batch-games"
	ConfigBatchThreads     = "batch-threads"
	ConfigCPUProfile       = "cpu-profile"
)

// Config holds every setting. Values come from flags, then KLONDIKE_*
// environment variables, then the defaults below.
type Config struct {
	viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigTurnLimit, 15)
	v.SetDefault(ConfigMaxChainsPerCard, 256)
	v.SetDefault(ConfigSeed, 0)
	v.SetDefault(ConfigDealFile, "")
	v.SetDefault(ConfigFixture, "")
	v.SetDefault(ConfigBatchGames, 100)
	v.SetDefault(ConfigBatchThreads, 4)
	v.SetDefault(ConfigCPUProfile, "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("klondike")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load parses command-line args and returns the arguments left over after
// the flags.
func (c *Config) Load(args []string) ([]string, error) {
	v := newViper()
	fs := pflag.NewFlagSet("klondike", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigTurnLimit, 15, "turns to play before giving up")
	fs.Int(ConfigMaxChainsPerCard, 256, "most move chains kept per card")
	fs.Uint64(ConfigSeed, 0, "shuffle seed; 0 shuffles randomly")
	fs.String(ConfigDealFile, "", "YAML file with a fixed deal")
	fs.String(ConfigFixture, "", "built-in fixed deal (fixture1, fixture2)")
	fs.Int(ConfigBatchGames, 100, "games to play in a batch")
	fs.Int(ConfigBatchThreads, 4, "games to play at once in a batch")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	c.Viper = *v
	return fs.Args(), nil
}

// DefaultConfig returns the defaults, without looking at any arguments.
func DefaultConfig() *Config {
	return &Config{Viper: *newViper()}
}
