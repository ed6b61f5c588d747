// Package camundatest records the job commands a handler sends, without a
// gateway connection.
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient implements worker.JobClient. The embedded gateway is nil; only
// CompleteJob, FailJob and ThrowError are served.
type JobClient struct {
	pb.GatewayClient

	// SendErr, when set, is returned by every command after it is recorded.
	SendErr error

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest
}

func NewJobClient() *JobClient {
	return &JobClient{}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c, noRetry)
}

func (c *JobClient) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed = append(c.completed, in)
	if c.SendErr != nil {
		return nil, c.SendErr
	}
	return &pb.CompleteJobResponse{}, nil
}

func (c *JobClient) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = append(c.failed, in)
	if c.SendErr != nil {
		return nil, c.SendErr
	}
	return &pb.FailJobResponse{}, nil
}

func (c *JobClient) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thrown = append(c.thrown, in)
	if c.SendErr != nil {
		return nil, c.SendErr
	}
	return &pb.ThrowErrorResponse{}, nil
}

func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), c.completed...)
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.failed...)
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.thrown...)
}
