// TickVault CLI — инструмент командной строки для управления
// real-time базами рыночных данных через TickVault API.
//
// Использование:
//
//	tickvault [--api-url URL] [--config FILE] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	realtime  Сбор и выгрузка real-time рыночных данных
//	db        Администрирование баз (список, S3, оптимизация)
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shaiso/tickvault/internal/cli"
	"github.com/shaiso/tickvault/internal/client"
	"github.com/shaiso/tickvault/internal/config"
	"github.com/shaiso/tickvault/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	logger := telemetry.SetupLogger()

	// .env в рабочей директории — необязательный
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	var apiURL string
	var configPath string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "tickvault",
		Short:         "TickVault CLI — real-time market data tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API server URL (overrides config file and TICKVAULT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default is environment variables)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() (*client.Client, error) {
		var cfg *config.Config
		if configPath != "" {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return nil, err
			}
		} else {
			cfg = config.FromEnv()
		}

		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		c := client.New(cfg)
		c.SetLogger(logger)
		return c, nil
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewRealtimeCmd(clientFn, outputFn),
		cli.NewDBCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
