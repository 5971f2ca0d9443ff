package cmd

import (
	"log"

	"github.com/GokhanGuclu/zoko/zoko"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Starts the Zoko bot and (optionally) the status API",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		bot, err := zoko.New(cfg)
		if err != nil {
			log.Fatalf("error creating zoko: %s", err.Error())
		}

		if err = bot.Run(ctx); err != nil {
			log.Fatalf("error running zoko: %s", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
