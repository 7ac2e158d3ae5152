package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwarner-dev/postpilot/internal/observability"
	"github.com/mwarner-dev/postpilot/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Search the web for a topic and print the aggregated material.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		topic := strings.Join(args, " ")

		svc := research.NewService(
			research.NewDuckDuckGoSearcher(appConfig.Research, logger),
			research.NewFetcher(appConfig.Research, logger),
			appConfig.Research,
			logger,
		)

		result, err := svc.Research(cmd.Context(), topic)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sources: %d\n\n%s\n", result.SourceCount, result.Corpus)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}
