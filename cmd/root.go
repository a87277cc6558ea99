// Package cmd holds the blockdrop command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"blockdrop/config"
	"blockdrop/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	emph = color.New(color.FgBlue, color.Bold).SprintFunc()
	warn = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// NewRootCmd builds the command tree. Without a subcommand it plays.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blockdrop",
		Short: "A falling block puzzle for the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	addPlayFlags(root)
	root.AddCommand(newPlayCmd(), newServeCmd(), newHighScoreCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and lets the flags that were set on
// the command line override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	var errs []error
	if flags.Changed("no-ghost") {
		cfg.NoGhost, err = flags.GetBool("no-ghost")
		errs = append(errs, err)
	}
	if flags.Changed("seed") {
		cfg.Seed, err = flags.GetUint64("seed")
		errs = append(errs, err)
	}
	if flags.Changed("score-addr") {
		cfg.ScoreAddr, err = flags.GetString("score-addr")
		errs = append(errs, err)
	}
	if flags.Changed("db") {
		cfg.DBPath, err = flags.GetString("db")
		errs = append(errs, err)
	}
	if flags.Changed("port") {
		cfg.Port, err = flags.GetInt("port")
		errs = append(errs, err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("read flags: %w", err)
		}
	}
	return cfg, nil
}

// openStore opens the local score database, creating its directory first.
func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return st, nil
}
