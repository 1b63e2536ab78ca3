package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tish-shell/tish/core"
	"github.com/tish-shell/tish/core/config"
	"github.com/tish-shell/tish/core/logger"
)

var (
	cfgPath     string
	commandLine string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in configuration so the shell
// works without an init step. A config that exists but can't be read is
// still an error.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tish",
	Short: "Tiny interactive shell",
	Long: `A tiny command interpreter: it reads one line at a time, splits it on
whitespace and runs the result, either as a builtin or as a child process.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdio := core.StandardIO()

	sessionLog := logger.NewNopLogger().Sessionless()
	if cfg.Dir() != "" && !cfg.DisableSessionLog {
		fd, err := cfg.OpenSessionLog()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "tish: can't open session log: %v\n", err)
		} else {
			defer fd.Close()
			sessionLog = logger.NewJsonLinesLogRecorder(fd).NewSession()
		}
	}

	shell, err := core.NewShell(cfg, stdio, sessionLog)
	if err != nil {
		return err
	}
	defer shell.Close()

	if commandLine != "" {
		shell.RunCommand(commandLine)
		return nil
	}

	if cfg.Motd != "" && stdio.Interactive() {
		fmt.Fprintln(stdio.Stdout, cfg.Motd)
	}

	shell.Run()
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tish")
	}
	return "."
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
}
