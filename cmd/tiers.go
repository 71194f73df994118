package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// tiersCmd prints the fixed prize schedule
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the prize tier table",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		renderer, err := NewTableRenderer(os.Stdout, locale, currency)
		if err != nil {
			logrus.Fatalf("Invalid locale: %v", err)
		}
		renderer.RenderTiers()
	},
}

func init() {
	defaults := DefaultRunConfig()
	tiersCmd.Flags().StringVar(&logLevel, "log", "error", logLevelUsage)
	tiersCmd.Flags().StringVar(&locale, "locale", defaults.Locale, "Locale for digit grouping (BCP 47)")
	tiersCmd.Flags().StringVar(&currency, "currency", defaults.Currency, "Currency symbol for money amounts")
}
