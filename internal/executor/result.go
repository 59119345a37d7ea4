package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Result is what a blocking execution produces: the command's full
// stdout and stderr and its exit status. Exactly one Result crosses the
// result pipe per invocation.
type Result struct {
	Stdout   []byte `json:"stdout"`
	Stderr   []byte `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// EncodeResult writes the serialized record to w.
func EncodeResult(w io.Writer, res *Result) error {
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// DecodeResult parses a serialized record. An empty payload is the
// defined "no result produced" default: exit code 0 with empty streams.
func DecodeResult(data []byte) (*Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Result{}, nil
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}
