package cmd

import (
	"context"
	"fmt"
	"time"

	"blockdrop/server"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

const highScoreTimeout = 5 * time.Second

func newHighScoreCmd() *cobra.Command {
	hs := &cobra.Command{
		Use:   "highscore",
		Short: "Show the high score and the best games",
		Args:  cobra.NoArgs,
		RunE:  runHighScore,
	}
	hs.Flags().Int("top", 10, "number of games to list")
	hs.Flags().String("score-addr", "", "ask a score server instead of the local database")
	hs.Flags().String("db", "", "path of the local score database")
	return hs
}

func runHighScore(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), highScoreTimeout)
	defer cancel()
	out := cmd.OutOrStdout()

	if cfg.ScoreAddr != "" {
		remote, err := server.Dial(cfg.ScoreAddr)
		if err != nil {
			return err
		}
		defer remote.Close()
		hs, err := remote.HighScore(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "High score on %s: %s\n", cfg.ScoreAddr, emph(humanize.Comma(hs)))
		return nil
	}

	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	best, err := st.Best(ctx)
	if err != nil {
		return err
	}
	if best.ID == "" {
		fmt.Fprintln(out, "No high score yet.")
		return nil
	}
	fmt.Fprintf(out, "High score: %s, %s\n", emph(humanize.Comma(best.Score)), humanize.Time(best.PlayedAt))

	games, err := st.Top(ctx, top)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tbl := table.New("RANK", "SCORE", "GAME", "PLAYED")
	tbl.WithWriter(out)
	tbl.WithFirstColumnFormatter(color.New(color.FgBlue, color.Bold).SprintfFunc())
	for i, g := range games {
		tbl.AddRow(i+1, humanize.Comma(g.Score), g.ID, humanize.Time(g.PlayedAt))
	}
	tbl.Print()
	return nil
}
