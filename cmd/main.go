package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"transaction-entry/internal/client"
	"transaction-entry/internal/domain"
	"transaction-entry/internal/form"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "http://localhost:8080/api"

type config struct {
	APIURL   string
	Token    string
	LogLevel log.Level
}

func newRootCmd() (*cobra.Command, *viper.Viper) {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "transaction-entry",
		Short:        "Enter a single income or expense transaction",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("api-url", defaultAPIURL, "base URL of the finance API (env API_URL)")
	cmd.Flags().String("token", "", "bearer token for the finance API (env API_TOKEN)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = v.BindPFlag("api_url", cmd.Flags().Lookup("api-url"))
	_ = v.BindPFlag("api_token", cmd.Flags().Lookup("token"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	v.AutomaticEnv()

	return cmd, v
}

// loadConfig resolves settings: flags override env, env overrides flag defaults
func loadConfig(v *viper.Viper) (config, error) {
	level, err := log.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return config{}, fmt.Errorf("invalid log level: %w", err)
	}

	token := v.GetString("api_token")
	if token == "" {
		return config{}, errors.New("API_TOKEN environment variable or --token flag is required")
	}

	return config{
		APIURL:   v.GetString("api_url"),
		Token:    token,
		LogLevel: level,
	}, nil
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Debug("could not load .env file", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd, _ := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: cfg.LogLevel})

	apiClient, err := client.NewClient(
		cfg.APIURL,
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		logger.WithPrefix("api-client"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	var created *domain.Transaction
	txForm := form.New(apiClient, form.Config{
		Logger: logger.WithPrefix("transaction-form"),
		OnComplete: func(tx domain.Transaction) {
			created = &tx
		},
	})
	txForm.Mount(ctx)

	if err := txForm.Prompt(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Entry cancelled")
			return nil
		}
		return fmt.Errorf("failed to read transaction: %w", err)
	}

	if err := txForm.Submit(ctx); err != nil {
		return err
	}

	if created == nil {
		fmt.Println("Transaction was not saved, see log for details")
		return nil
	}
	fmt.Printf("Saved %s: %.2f %s to %s\n",
		created.TransactionType, created.Amount, created.Category, created.AccountNumber)
	return nil
}
