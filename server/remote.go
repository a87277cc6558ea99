package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RemoteScores keeps the high score on a score server.
type RemoteScores struct {
	conn *grpc.ClientConn
}

// Dial connects to the score server at addr. The connection is lazy, an
// unreachable server only fails the first call.
func Dial(addr string) (*RemoteScores, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	return NewRemoteScores(conn), nil
}

func NewRemoteScores(conn *grpc.ClientConn) *RemoteScores {
	return &RemoteScores{conn: conn}
}

func (r *RemoteScores) HighScore(ctx context.Context) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := r.conn.Invoke(ctx, getHighScoreMethod, &emptypb.Empty{}, out); err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return out.GetValue(), nil
}

func (r *RemoteScores) Submit(ctx context.Context, gameID string, score int64) (bool, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, GameIDHeader, gameID)
	out := new(wrapperspb.BoolValue)
	if err := r.conn.Invoke(ctx, submitScoreMethod, wrapperspb.Int64(score), out); err != nil {
		return false, fmt.Errorf("submit score: %w", err)
	}
	return out.GetValue(), nil
}

func (r *RemoteScores) Close() error {
	return r.conn.Close()
}
