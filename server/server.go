package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Store persists the high score.
type Store interface {
	HighScore(ctx context.Context) (int64, error)
	Submit(ctx context.Context, gameID string, score int64) (bool, error)
}

type scoreServer struct {
	store  Store
	logger *slog.Logger
}

func New(s Store, l *slog.Logger) ScoreServiceServer {
	return &scoreServer{store: s, logger: l}
}

// NewGRPCServer returns a gRPC server with the score service registered
// and every call logged.
func NewGRPCServer(s Store, l *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(l)))
	RegisterScoreServiceServer(srv, New(s, l))
	return srv
}

func (s *scoreServer) GetHighScore(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	hs, err := s.store.HighScore(ctx)
	if err != nil {
		s.logger.Error("unable to read high score", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to read high score")
	}
	return wrapperspb.Int64(hs), nil
}

func (s *scoreServer) SubmitScore(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	gameID := gameIDFromContext(ctx)
	if gameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "missing %s metadata", GameIDHeader)
	}
	if in.GetValue() < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "score must not be negative, got %d", in.GetValue())
	}
	best, err := s.store.Submit(ctx, gameID, in.GetValue())
	if err != nil {
		s.logger.Error("unable to submit score", slog.String("game_id", gameID), slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to submit score")
	}
	if best {
		s.logger.Info("new high score", slog.String("game_id", gameID), slog.Int64("score", in.GetValue()))
	}
	return wrapperspb.Bool(best), nil
}

func gameIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(GameIDHeader) {
		if v != "" {
			return v
		}
	}
	return ""
}

func loggingInterceptor(l *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		l.Debug("handled call",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp, err
	}
}
