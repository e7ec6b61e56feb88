// Command research runs one company research from the command line
// and mints service tokens for the HTTP API.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"company_research/internal/app/di"
	researchhandler "company_research/internal/feature/research/transport/handler"
	"company_research/internal/platform/config"
	jwtmw "company_research/internal/platform/jwt"
	"company_research/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "research",
		Short:         "Company research from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newTokenCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "run <company name or ticker>",
		Short: "Research a company and print the profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// stdoutはJSON出力専用
			_, logFile, err := logging.Setup(cfg.Env, cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			defer logFile.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc, err := di.NewResearchUsecase(ctx, cfg)
			if err != nil {
				return err
			}
			profile, err := uc.Research(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(researchhandler.ToResponse(profile))
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for POST /research_company",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cfg.Auth.Enabled() {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			token, err := jwtmw.NewGenerator(cfg.Auth.JWTSecret, ttl).GenerateToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "research-cli", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
