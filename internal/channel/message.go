package channel

import (
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"github.com/bytedance/sonic"
)

// Channel-level failure codes
const (
	CodeMalformedRequest = "MALFORMED_REQUEST"
	CodeChannelMismatch  = "CHANNEL_MISMATCH"
	CodeMessageTooLarge  = "MESSAGE_TOO_LARGE"
)

var codec = sonic.ConfigStd

// Request is one method call
type Request struct {
	ID        string                 `json:"id,omitempty"`
	Channel   string                 `json:"channel,omitempty"`
	Method    string                 `json:"method"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// Response answers exactly one Request
type Response struct {
	ID     string         `json:"id"`
	Status types.Status   `json:"status"`
	Result interface{}    `json:"result"`
	Error  *types.Failure `json:"error,omitempty"`
}

// NewResponse converts a dispatch result
func NewResponse(id string, result *types.Result) Response {
	resp := Response{ID: id, Status: result.Status()}
	if result.Success {
		resp.Result = result.Value
	} else {
		resp.Error = result.Failure
	}
	return resp
}

// DecodeRequest parses one request message
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	err := codec.Unmarshal(data, &req)
	return req, err
}

// EncodeResponse serializes one response message
func EncodeResponse(resp Response) ([]byte, error) {
	return codec.Marshal(resp)
}

// EncodeRequest serializes one request message
func EncodeRequest(req Request) ([]byte, error) {
	return codec.Marshal(req)
}

// DecodeResponse parses one response message
func DecodeResponse(data []byte) (Response, error) {
	var resp Response
	err := codec.Unmarshal(data, &resp)
	return resp, err
}
