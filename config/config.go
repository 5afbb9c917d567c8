package config

import (
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/hdltools/fbt/log"
)

// Config holds the tool settings that are not part of a build description.
type Config struct {
	// Vivado is the executable used to run the generated build script.
	Vivado string `mapstructure:"vivado"`
	// Yosys is the executable used for the external synthesis pre-pass.
	Yosys string `mapstructure:"yosys"`
	// Shell overrides the shell used to run the generated wrapper script.
	Shell string `mapstructure:"shell"`
	// NoColor disables colored log output.
	NoColor bool `mapstructure:"no_color"`
}

const configFileName = "config"

var config *Config

func configDir() string {
	if dir, ok := os.LookupEnv("FBT_CONFIG_DIR"); ok {
		return dir
	}
	if dir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return path.Join(dir, "fbt")
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return path.Join(home, ".config", "fbt")
}

func loadConfiguration() Config {
	v := viper.New()
	// Every key needs a default so that env-only overrides survive Unmarshal.
	v.SetDefault("vivado", "vivado")
	v.SetDefault("yosys", "yosys")
	v.SetDefault("shell", "")
	v.SetDefault("no_color", false)
	v.SetEnvPrefix("FBT")
	v.AutomaticEnv()

	dir := configDir()
	if dir == "" {
		log.Debug("Unable to locate the configuration directory. Using default configuration\n")
		return readConfig(v)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		log.Debug("No configuration file loaded: %s. Using default configuration\n", err)
		return readConfig(v)
	}

	log.Debug("Loaded configuration from `%s`\n", v.ConfigFileUsed())
	return readConfig(v)
}

func readConfig(v *viper.Viper) Config {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Warning("Failed to parse configuration: %s. Using default configuration\n", err)
		return Config{Vivado: "vivado", Yosys: "yosys"}
	}
	log.Debug("Running with configuration: %+v\n", c)
	return c
}

// GetConfig returns the tool configuration, loading it on first use.
func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
		log.NoColor = loadedConfig.NoColor
	}
	return *config
}
