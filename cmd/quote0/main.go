// Quote0 is a command-line companion for the Quote/0 SDK.
//
// It covers the full authV2 device surface: listing devices, reading device
// status, switching to the next queued content, listing queued tasks, and
// pushing text or image content.
//
// Usage:
//
//	quote0 [command] [flags]
//
// The API token comes from --token, the QUOTE0_API_KEY environment variable,
// or a .env file in the working directory. See 'quote0 --help' for commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/1set/quote0/v2"
)

var (
	flagToken   string
	flagBaseURL string
	flagDevice  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quote0",
	Short: "Quote/0 e-ink display control",
	Long: `A command-line companion for Quote/0 e-ink displays.

Lists registered devices, reads device status, switches displayed content,
lists queued tasks, and pushes text or image content via the authV2 open API.`,
	SilenceUsage: true,
}

func init() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("QUOTE0_API_KEY"),
		"API token (or set QUOTE0_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", os.Getenv("QUOTE0_BASE_URL"),
		"API host override (or set QUOTE0_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", os.Getenv("QUOTE0_DEVICE_ID"),
		"device serial (or set QUOTE0_DEVICE_ID)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log every API request at debug level")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(imageCmd)
}

// newClient builds an SDK client from the persistent flags.
func newClient() (*quote0.Client, error) {
	opts := []quote0.ClientOption{}
	if flagBaseURL != "" {
		opts = append(opts, quote0.WithBaseURL(flagBaseURL))
	}
	if flagDevice != "" {
		opts = append(opts, quote0.WithDefaultDeviceID(flagDevice))
	}
	if flagVerbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, quote0.WithLogger(logger))
	}
	return quote0.NewClient(flagToken, opts...)
}
