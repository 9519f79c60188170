package main

import (
	"context"
	"fmt"
	"linkguard/internal/config"
	"linkguard/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCommand decides the URLs given as arguments and prints one line per URL.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check URL...",
		Short: "Decides whether the given URLs are phishing",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			decider := setupDecider(ctx, cfg)

			failed := false
			for _, res := range decider.DecideAll(ctx, args) {
				if res.Err != nil {
					failed = true
					fmt.Printf("%s\terror\t%v\n", res.Verdict.URL, res.Err) //nolint: forbidigo

					continue
				}
				fmt.Printf("%s\t%s\t%s\t%s\n", //nolint: forbidigo
					res.Verdict.URL, res.Verdict.Label, res.Verdict.Source, res.Verdict.Domain)
			}

			if failed {
				logger.Fatal(ctx, "some urls could not be decided", zap.Int("urls", len(args)))
			}
		},
	}

	return cmd
}
