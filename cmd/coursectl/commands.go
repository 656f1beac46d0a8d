package main

import (
	"fmt"
	"strconv"
	"time"

	"courseapi/internal/entity"

	"github.com/spf13/cobra"
)

func newProbeCmd(opts *rootOptions) *cobra.Command {
	var (
		wait    bool
		retries int
		delay   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether the course API is answering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			running, err := opts.controller().IsRunning(ctx, wait, retries, delay)
			if err != nil {
				return err
			}
			if !running {
				return fmt.Errorf("course api not running at %s", opts.baseURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "course api running at %s\n", opts.baseURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Keep probing until the server answers")
	cmd.Flags().IntVar(&retries, "retries", 8, "Maximum probe attempts")
	cmd.Flags().DurationVar(&delay, "delay", 512*time.Millisecond, "Delay between probe attempts")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore every rating to not rated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			ok, err := opts.controller().Reset(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("reset rejected by %s", opts.baseURL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ratings reset")
			return nil
		},
	}
}

func newSummariesCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "List courses, optionally filtered by text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			summaries, err := opts.client().Summaries(ctx)
			if err != nil {
				return err
			}
			if filter != "" {
				summaries = entity.FilterSummaries(summaries, filter)
			}
			for _, s := range summaries {
				fmt.Fprintln(cmd.OutOrStdout(), s.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Only list courses whose text contains this")
	return cmd
}

func newCourseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "course SUBJECT NUMBER",
		Short: "Show one course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			course, err := opts.client().Course(ctx, summaryFromArgs(args))
			if err != nil {
				return err
			}
			out, err := entity.MarshalIndent(course)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newRatingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rating SUBJECT NUMBER",
		Short: "Show the rating of one course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			rating, err := opts.client().Rating(ctx, summaryFromArgs(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRating(*rating))
			return nil
		},
	}
}

func newRateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate SUBJECT NUMBER VALUE",
		Short: "Rate one course from 0 to 5",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", args[2], err)
			}
			if value < 0 || value > entity.MaxRating {
				return fmt.Errorf("rating must be between 0 and %g, got %g", entity.MaxRating, value)
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			stored, err := opts.client().PostRating(ctx, entity.Rating{
				Summary: summaryFromArgs(args),
				Rating:  value,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRating(*stored))
			return nil
		},
	}
}

func summaryFromArgs(args []string) entity.Summary {
	return entity.Summary{Subject: args[0], Number: args[1]}
}

func formatRating(r entity.Rating) string {
	if !r.IsRated() {
		return fmt.Sprintf("%s: not rated", r.Summary)
	}
	return fmt.Sprintf("%s: %s", r.Summary, strconv.FormatFloat(r.Rating, 'g', -1, 64))
}
