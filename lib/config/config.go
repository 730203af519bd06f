package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/spf13/viper"

	"github.com/go-timekit/timekit/lib/util"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const TIMEKIT_BASE_DIR = ".timekit"

// InitConfig wires viper to the config file (the --config flag or the
// default ~/.timekit/config.yaml), loads defaults, and creates the default
// file on first run.
func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildTimekitDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	handleConfigFile()
}

func setDefaults() {
	defaults := DefaultClockConfig()
	viper.SetDefault("ntp.enabled", defaults.NTP.Enabled)
	viper.SetDefault("ntp.servers", defaults.NTP.Servers)
	viper.SetDefault("ntp.query_timeout", defaults.NTP.QueryTimeout)
	viper.SetDefault("ntp.min_query_interval", defaults.NTP.MinQueryInterval)
}

// NewClockConfigFromViper creates a ClockConfig from current viper settings.
func NewClockConfigFromViper() *ClockConfig {
	return &ClockConfig{
		NTP: &NTPConfig{
			Enabled:          viper.GetBool("ntp.enabled"),
			Servers:          viper.GetStringSlice("ntp.servers"),
			QueryTimeout:     viper.GetDuration("ntp.query_timeout"),
			MinQueryInterval: viper.GetDuration("ntp.min_query_interval"),
		},
	}
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	if err := viper.WriteConfigAs(defaultConfigFile); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildTimekitDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildTimekitDirPath() string {
	return filepath.Join(util.UserHome(), TIMEKIT_BASE_DIR)
}
