// Package cli holds the cobra commands of the ecosense binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanwahyu/ecosense/internal/bootstrap"
	"github.com/bryanwahyu/ecosense/internal/config"
	"github.com/bryanwahyu/ecosense/internal/logger"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

type state struct {
	v   *viper.Viper
	cfg *config.Config
	log zerolog.Logger
}

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	st := &state{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "ecosense",
		Short:         "Environmental image and footprint analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, st.v)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return st.load(cmd)
	}

	rootCmd.AddCommand(analyzeCommand(st), serveCommand(st))
	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, v *viper.Viper) {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "config.yaml", "Path to config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("gemini-key", "", "Gemini API key (overrides config and GEMINI_API_KEY)")
	pf.String("model", "", "Gemini model name")
	pf.String("db", "", "SQLite file to store results in")
	pf.String("tenant", "local", "Tenant the results are stored under")
	pf.StringP("output", "o", FormatJSON, "Output format: json, markdown")

	// ECOSENSE_GEMINI_KEY etc. also work
	v.SetEnvPrefix("ECOSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(pf)
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.v.GetString("config"))
	if err != nil {
		return err
	}
	if s := st.v.GetString("gemini-key"); s != "" {
		cfg.AI.Gemini.APIKey = s
	}
	if s := st.v.GetString("model"); s != "" {
		cfg.AI.Gemini.Model = s
	}
	if s := st.v.GetString("db"); s != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = s
	}
	if s := st.v.GetString("log-level"); s != "" {
		cfg.Log.Level = s
	}
	switch st.v.GetString("output") {
	case FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown output format %q", st.v.GetString("output"))
	}
	st.cfg = cfg
	st.log = logger.New(cmd.ErrOrStderr(), cfg.Log.Level, "console")
	return nil
}

func (st *state) app(ctx context.Context) (*bootstrap.App, error) {
	return bootstrap.New(logger.WithContext(ctx, st.log), st.cfg, st.log)
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context) int {
	if err := RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
