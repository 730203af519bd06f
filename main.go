package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"

	"github.com/go-timekit/timekit/lib/clock/monotonic"
	"github.com/go-timekit/timekit/lib/clock/sntp"
	"github.com/go-timekit/timekit/lib/clock/source"
	"github.com/go-timekit/timekit/lib/clock/wall"
	"github.com/go-timekit/timekit/lib/config"
)

var log = logger.GetGoI2PLogger()

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var rootCmd = &cobra.Command{
	Use:   "timekit",
	Short: "Carry-safe wall and monotonic clock readings",
}

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the current wall and monotonic readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := buildSource()
		st, err := wall.Now(src)
		if err != nil {
			return err
		}
		ins, err := monotonic.Now(src)
		if err != nil {
			return err
		}
		printField("wall", st.String())
		if d, err := st.SinceEpoch(); err == nil {
			printField("since epoch", d.String())
		}
		printField("monotonic", ins.String())
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Query the configured NTP servers once and print the offset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewClockConfigFromViper()
		src := sntp.NewSource(source.NewSystemSource(), nil, sntp.Options{
			Servers:          cfg.NTP.Servers,
			QueryTimeout:     cfg.NTP.QueryTimeout,
			MinQueryInterval: cfg.NTP.MinQueryInterval,
		})
		log.WithField("servers", cfg.NTP.Servers).Debug("querying NTP servers")
		if err := src.Sync(); err != nil {
			return err
		}
		printField("offset", src.Offset().String())
		return nil
	},
}

// buildSource assembles the raw clock stack: the system clock, wrapped with
// NTP correction when enabled in the configuration.
func buildSource() source.Source {
	sys := source.NewSystemSource()
	cfg := config.NewClockConfigFromViper()
	if !cfg.NTP.Enabled {
		return sys
	}
	return sntp.NewSource(sys, nil, sntp.Options{
		Servers:          cfg.NTP.Servers,
		QueryTimeout:     cfg.NTP.QueryTimeout,
		MinQueryInterval: cfg.NTP.MinQueryInterval,
	})
}

func printField(name, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(name+":"), valueStyle.Render(value))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default ~/.timekit/config.yaml)")
	cobra.OnInitialize(config.InitConfig)
	rootCmd.AddCommand(nowCmd, syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
