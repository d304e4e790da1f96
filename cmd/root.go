package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/html-checker/cmd/page"
	"github.com/scan-io-git/html-checker/cmd/version"
	"github.com/scan-io-git/html-checker/pkg/shared/config"
	cmderrors "github.com/scan-io-git/html-checker/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "html-checker [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "html-checker validates HTML pages with the Nu Html Checker.",
		Long: `html-checker runs the Nu Html Checker (vnu) on local files and URLs
	and reports its messages grouped by location, as logs, JSON or SARIF.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HTML_CHECKER_CONFIG or config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(page.PageCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var cmdErr *cmderrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return cmderrors.ExitCodeError
	}
	return 0
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file - %v\n", err)
		os.Exit(cmderrors.ExitCodeError)
	}

	if cfgFile == "" {
		cfgFile = config.SetThen(os.Getenv("HTML_CHECKER_CONFIG"), config.DefaultConfigPath)
	}

	var err error
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing config file function is crashed - %v\n", err)
		os.Exit(cmderrors.ExitCodeError)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmderrors.ExitCodeError)
	}

	version.Init(AppConfig)
	page.Init(AppConfig)
}
