package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skill-to-role/internal/filtering"
	"github.com/spigell/skill-to-role/internal/matcher"
)

const (
	app = "skill-to-role"

	defaultCatalog = "data/roles.json"
)

type Config struct {
	Catalog string         `mapstructure:"catalog"`
	Top     int            `mapstructure:"top"`
	Color   bool           `mapstructure:"color"`
	Export  *ExportConfig  `mapstructure:"export"`
	Filters *FiltersConfig `mapstructure:"filters"`
}

type ExportConfig struct {
	Filename string `mapstructure:"filename"`
	Dir      string `mapstructure:"dir"`
}

type FiltersConfig struct {
	ExcludeRoles []string `mapstructure:"exclude-roles"`
	MinimumMatch int      `mapstructure:"minimum-match"`
	Disabled     []string `mapstructure:"disabled"`
}

// filterConfig returns the filter settings, empty when the section is absent.
func (c *Config) filterConfig() *filtering.Config {
	if c == nil || c.Filters == nil {
		return &filtering.Config{}
	}
	return &filtering.Config{
		ExcludeRoles: c.Filters.ExcludeRoles,
		MinimumMatch: c.Filters.MinimumMatch,
	}
}

func (c *Config) disabledFilters() []string {
	if c == nil || c.Filters == nil {
		return nil
	}
	return c.Filters.Disabled
}

func (c *Config) exportConfig() ExportConfig {
	if c == nil || c.Export == nil {
		return ExportConfig{}
	}
	return *c.Export
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-to-role matches your skills against a catalog of job roles and reports the best fits",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("catalog", "SKILL_TO_ROLE_CATALOG"); err != nil {
		log.Fatalf("binding SKILL_TO_ROLE_CATALOG environment variable: %v", err)
	}

	viper.SetDefault("catalog", defaultCatalog)
	viper.SetDefault("top", matcher.DefaultLimit)
	viper.SetDefault("color", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-to-role.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog", "", "a role catalog file in JSON or YAML (default is data/roles.json)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
