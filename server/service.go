package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "blockdrop.ScoreService"

	getHighScoreMethod = "/" + ServiceName + "/GetHighScore"
	submitScoreMethod  = "/" + ServiceName + "/SubmitScore"

	// GameIDHeader carries the id of the game a submitted score belongs to.
	GameIDHeader = "x-blockdrop-game-id"
)

// ScoreServiceServer keeps the best score of every client that reports to it.
// Messages are protobuf well-known types so no generated code is needed.
type ScoreServiceServer interface {
	GetHighScore(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	SubmitScore(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
}

var scoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScoreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetHighScore", Handler: getHighScoreHandler},
		{MethodName: "SubmitScore", Handler: submitScoreHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blockdrop/score.proto",
}

func RegisterScoreServiceServer(s grpc.ServiceRegistrar, srv ScoreServiceServer) {
	s.RegisterService(&scoreServiceDesc, srv)
}

func getHighScoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoreServiceServer).GetHighScore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getHighScoreMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoreServiceServer).GetHighScore(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func submitScoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoreServiceServer).SubmitScore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitScoreMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoreServiceServer).SubmitScore(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}
