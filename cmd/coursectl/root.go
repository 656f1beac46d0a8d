package main

import (
	"context"
	"os"
	"time"

	"courseapi/internal/config"
	"courseapi/internal/lifecycle"
	"courseapi/internal/platform/courseclient"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "coursectl",
		Short:        "Talk to a running course API server",
		SilenceUsage: true,
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", baseURL, "Course API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall command timeout")

	cmd.AddCommand(
		newProbeCmd(opts),
		newResetCmd(opts),
		newSummariesCmd(opts),
		newCourseCmd(opts),
		newRatingCmd(opts),
		newRateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func (o *rootOptions) client() *courseclient.Client {
	return courseclient.NewClient(o.baseURL, 0, 2)
}

func (o *rootOptions) controller() *lifecycle.Controller {
	return lifecycle.NewController(lifecycle.Config{BaseURL: o.baseURL}, nil)
}
