package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/linkedin"
	"github.com/mwarner-dev/postpilot/internal/observability"
)

var postCmd = &cobra.Command{
	Use:   "post [content]",
	Short: "Publish a post to LinkedIn. Reads content from stdin when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		var content string
		if len(args) == 1 {
			content = args[0]
		} else {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading content from stdin: %w", err)
			}
			content = string(raw)
		}
		content = strings.TrimSpace(content)

		poster := linkedin.NewPoster(appConfig, logger)
		outcome, err := poster.Post(cmd.Context(), content)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Status:  %s\n", outcome.Status)
		fmt.Fprintf(out, "Message: %s\n", outcome.Message)
		if outcome.DiagnosticPath != "" {
			fmt.Fprintf(out, "Diagnostic screenshot: %s\n", outcome.DiagnosticPath)
		}

		if !outcome.OK() {
			logger.Warn("Post did not complete.", zap.String("status", string(outcome.Status)))
			return fmt.Errorf("post not confirmed: %s", outcome.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
}
