package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/trends-proxy/internal/probe"
	"github.com/samvad-hq/trends-proxy/pkg/httpclient"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		niches  []string
		timeout time.Duration
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "trends-probe",
		Short: "Issue test requests against the trends endpoint",
		Long:  "Calls /api/trends for each niche (default: general, Technology, Marketing) and prints the first three results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(niches) == 0 {
				niches = probe.DefaultNiches
			}
			p := probe.New(httpclient.NewRestyClient(timeout), baseURL)
			failures := p.RunAll(ctx, niches, cmd.OutOrStdout())
			if strict && failures > 0 {
				return fmt.Errorf("%d of %d probes failed", failures, len(niches))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", envOr("TRENDS_BASE_URL", probe.DefaultBaseURL), "endpoint base URL")
	cmd.Flags().StringSliceVar(&niches, "niche", nil, "niche to probe (repeatable); empty string probes general trends")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout (0 disables)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any probe fails")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
