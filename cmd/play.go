package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"blockdrop/client"
	"blockdrop/config"
	"blockdrop/server"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[23;0H\n\r\033[?25h"

	minWidth  = 50
	minHeight = 23
)

func newPlayCmd() *cobra.Command {
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	addPlayFlags(play)
	return play
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().Bool("no-ghost", false, "start with the ghost piece hidden")
	c.Flags().Uint64("seed", 0, "seed of the piece sequence, 0 is random")
	c.Flags().String("score-addr", "", "score server address, the local database is used when empty")
	c.Flags().String("db", "", "path of the local score database")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("play needs an interactive terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < minWidth || h < minHeight) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s terminal is %dx%d, the game needs at least %dx%d\n", warn("warning:"), w, h, minWidth, minHeight)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	// the terminal belongs to the game, logs go to a file.
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	scores, closeScores, err := openScores(cfg)
	if err != nil {
		return err
	}
	defer closeScores()

	c, err := client.New(logger, &client.Options{
		Writer:  cmd.OutOrStdout(),
		Seed:    cfg.Seed,
		NoGhost: cfg.NoGhost,
		Scores:  scores,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprint(cmd.OutOrStdout(), hideCursor)
	defer fmt.Fprint(cmd.OutOrStdout(), showCursor)
	logger.Info("client started", slog.String("scores", scoresName(cfg)))
	c.Start(ctx)
	return nil
}

// openScores picks the score server when one is configured and the local
// database otherwise.
func openScores(cfg *config.Config) (client.ScoreKeeper, func(), error) {
	if cfg.ScoreAddr != "" {
		remote, err := server.Dial(cfg.ScoreAddr)
		if err != nil {
			return nil, nil, err
		}
		return remote, func() { _ = remote.Close() }, nil
	}
	local, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return local, func() { _ = local.Close() }, nil
}

func scoresName(cfg *config.Config) string {
	if cfg.ScoreAddr != "" {
		return cfg.ScoreAddr
	}
	return cfg.DBPath
}
