package channel

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GriffinCanCode/hostbridge/internal/shared/id"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"go.uber.org/zap"
)

// DefaultMaxMessageBytes bounds a single request line
const DefaultMaxMessageBytes = 1 << 20

// Dispatcher answers a named operation
type Dispatcher interface {
	Dispatch(ctx context.Context, method string, args map[string]interface{}) *types.Result
}

// Channel is a named request channel bound to a dispatcher
type Channel struct {
	name            string
	dispatcher      Dispatcher
	logger          *zap.Logger
	maxMessageBytes int
}

// New creates a channel
func New(name string, dispatcher Dispatcher, logger *zap.Logger) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{
		name:            name,
		dispatcher:      dispatcher,
		logger:          logger,
		maxMessageBytes: DefaultMaxMessageBytes,
	}
}

// WithMaxMessageBytes sets the request size limit
func (c *Channel) WithMaxMessageBytes(n int) *Channel {
	if n > 0 {
		c.maxMessageBytes = n
	}
	return c
}

// Name returns the channel name
func (c *Channel) Name() string {
	return c.name
}

// Handle answers one decoded request
func (c *Channel) Handle(ctx context.Context, req Request) Response {
	reqID := req.ID
	if reqID == "" {
		reqID = id.NewRequestID().String()
	}

	if req.Channel != "" && req.Channel != c.name {
		c.logger.Warn("Request for another channel", zap.String("id", reqID), zap.String("channel", req.Channel))
		return NewResponse(reqID, types.Fail(types.KindInvalidArgument, CodeChannelMismatch,
			fmt.Sprintf("channel %q is not served here", req.Channel)))
	}

	return NewResponse(reqID, c.dispatcher.Dispatch(ctx, req.Method, req.Arguments))
}

// HandleMessage answers one encoded request with one encoded response
func (c *Channel) HandleMessage(ctx context.Context, data []byte) []byte {
	var resp Response

	req, err := DecodeRequest(data)
	if err != nil {
		c.logger.Warn("Malformed request", zap.Error(err))
		resp = NewResponse("", types.Fail(types.KindInvalidArgument, CodeMalformedRequest, "request is not a valid message"))
	} else {
		resp = c.Handle(ctx, req)
	}

	out, err := EncodeResponse(resp)
	if err != nil {
		c.logger.Error("Response encoding failed", zap.String("id", resp.ID), zap.Error(err))
		out, _ = EncodeResponse(NewResponse(resp.ID, types.Fail(types.KindEncoding, "ENCODING_ERROR", "response could not be encoded")))
	}
	return out
}

// Serve answers newline-delimited requests from r on w until r is exhausted
// or ctx is cancelled. Each response is flushed before the next read.
func (c *Channel) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, c.maxMessageBytes)), c.maxMessageBytes)
	out := bufio.NewWriter(w)

	c.logger.Info("Channel serving", zap.String("channel", c.name))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if !scanner.Scan() {
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if err := c.write(out, c.HandleMessage(ctx, line)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		msg, _ := EncodeResponse(NewResponse("", types.Fail(types.KindInvalidArgument, CodeMessageTooLarge,
			fmt.Sprintf("request exceeds %d bytes", c.maxMessageBytes))))
		_ = c.write(out, msg)
	}
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

func (c *Channel) write(out *bufio.Writer, msg []byte) error {
	if _, err := out.Write(msg); err != nil {
		return err
	}
	if err := out.WriteByte('\n'); err != nil {
		return err
	}
	return out.Flush()
}
