package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"blockdrop/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the score server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serve.Flags().Int("port", 9000, "port to listen on")
	serve.Flags().String("db", "", "path of the score database")
	return serve
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	lis, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, lis, st, logger)
}

// serve runs the score server on lis until ctx is done.
func serve(ctx context.Context, lis net.Listener, st server.Store, logger *slog.Logger) error {
	s := server.NewGRPCServer(st, logger)
	go func() {
		<-ctx.Done()
		logger.Info("stopping score server")
		s.GracefulStop()
	}()

	logger.Info("starting score server", slog.String("addr", lis.Addr().String()))
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
