package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration in priority order: defaults, then the config
// file, then BIRCH_* environment variables. With an explicit path the
// file must exist; with path empty, birch.yaml is searched for in the
// working directory and silently skipped when absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("birch")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BIRCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("library", d.Library)
	v.SetDefault("format", d.Format)

	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("compare.ingredient_weight", d.Compare.IngredientWeight)
	v.SetDefault("compare.instruction_weight", d.Compare.InstructionWeight)
	v.SetDefault("compare.metadata_weight", d.Compare.MetadataWeight)

	v.SetDefault("autosave.enabled", d.Autosave.Enabled)
	v.SetDefault("autosave.skip_initial", d.Autosave.SkipInitial)
	v.SetDefault("autosave.debounce", d.Autosave.Debounce)
}
