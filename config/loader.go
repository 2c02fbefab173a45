package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"hnefatafl/meta"
)

const envPrefix = "HNEFATAFL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules.surround", "strict")
	v.SetDefault("rules.starting_side", "attacker")
	v.SetDefault("clock.total", meta.DefaultGameClock)
	v.SetDefault("clock.per_turn", 0)
	v.SetDefault("scenario.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("selfplay.games", meta.SELF_PLAY_GAMES)
	v.SetDefault("selfplay.seed", 1)
	v.SetDefault("selfplay.max_moves", meta.MAX_MOVES)
	v.SetDefault("selfplay.parallelism", 4)
	v.SetDefault("selfplay.out_dir", "experiments/selfplay")
}

// Load reads the configuration file at path on top of the defaults. Without a
// path only defaults and HNEFATAFL_* environment variables apply, e.g.
// HNEFATAFL_CLOCK_TOTAL=5m.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !fileExist(path) {
			return nil, fmt.Errorf("config file not exist, path=%v", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if _, _, err := conf.Rules.Build(); err != nil {
		return nil, err
	}
	if conf.Clock.Total < 0 || conf.Clock.PerTurn < 0 {
		return nil, fmt.Errorf("clock limits should not be negative")
	}
	if _, err := ParseLogLevel(conf.Log.Level); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ParseLogLevel maps log.level to a zerolog level. Empty means info.
func ParseLogLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("log.level: unknown level %q", level)
	}
	return lvl, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
