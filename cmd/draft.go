package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwarner-dev/postpilot/internal/draft"
	"github.com/mwarner-dev/postpilot/internal/observability"
	"github.com/mwarner-dev/postpilot/internal/research"
)

var draftSkipResearch bool

var draftCmd = &cobra.Command{
	Use:   "draft <topic>",
	Short: "Research a topic and print a post draft built from the findings.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		topic := strings.Join(args, " ")

		var corpus string
		if !draftSkipResearch {
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
			corpus = result.Corpus
		}

		text, err := draft.Build(topic, corpus)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	draftCmd.Flags().BoolVar(&draftSkipResearch, "no-research", false, "skip web research and draft from the topic alone")
	rootCmd.AddCommand(draftCmd)
}
