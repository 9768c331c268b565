package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

// Request is one parsed protocol request. Params stay raw until the policy
// gate has cleared the action.
type Request struct {
	Action    string
	rawParams json.RawMessage
}

// Parse reads a full request payload. The failure ladder is fixed: empty
// input, invalid JSON, non-object root, and missing action are all usage
// errors.
func Parse(input []byte) (*Request, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return nil, cerrors.New(cerrors.CodeUsage, "empty input: expected a JSON request object")
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(input, &root); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeUsage, "invalid JSON request", err)
	}
	if root == nil {
		return nil, cerrors.New(cerrors.CodeUsage, "request root must be a JSON object")
	}

	rawAction, ok := root["action"]
	if !ok {
		return nil, cerrors.New(cerrors.CodeUsage, "missing action")
	}
	var action string
	if err := json.Unmarshal(rawAction, &action); err != nil || action == "" {
		return nil, cerrors.New(cerrors.CodeUsage, "action must be a non-empty string")
	}

	return &Request{Action: action, rawParams: root["params"]}, nil
}

// Params materializes the params object. Called only after the policy gate
// has passed; a missing or non-object params value is a usage error.
func (r *Request) Params() (Params, error) {
	if len(r.rawParams) == 0 {
		return nil, cerrors.New(cerrors.CodeUsage, "params must be a JSON object")
	}
	var params map[string]any
	if err := json.Unmarshal(r.rawParams, &params); err != nil || params == nil {
		return nil, cerrors.New(cerrors.CodeUsage, "params must be a JSON object")
	}
	return Params(params), nil
}
