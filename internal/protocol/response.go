package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/status-im/defi-native-core/internal/cerrors"
)

// Field is one action-specific response field. Fields are emitted in the
// order given so the envelope is byte-stable across invocations.
type Field struct {
	Name  string
	Value any
}

// EncodeOK renders a success envelope. The status field always comes first;
// with resultsOnly the action-specific fields nest under "results".
func EncodeOK(fields []Field, resultsOnly bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"status":"ok"`)
	if resultsOnly {
		buf.WriteString(`,"results":{`)
		if err := writeFields(&buf, fields, true); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	} else {
		if err := writeFields(&buf, fields, false); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeFields(buf *bytes.Buffer, fields []Field, bare bool) error {
	for i, field := range fields {
		if !bare || i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return fmt.Errorf("encode field name %q: %w", field.Name, err)
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return fmt.Errorf("encode field %q: %w", field.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	return nil
}

type errorEnvelope struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Error  string `json:"error"`
}

// EncodeError renders the error envelope for any error, mapping unclassified
// errors to the internal code.
func EncodeError(err error) []byte {
	env := errorEnvelope{
		Status: "error",
		Code:   int(cerrors.CodeOf(err)),
		Error:  err.Error(),
	}
	payload, marshalErr := json.Marshal(env)
	if marshalErr != nil {
		return []byte(`{"status":"error","code":1,"error":"failed to encode error response"}`)
	}
	return payload
}

// Write emits exactly one response object terminated by a newline.
func Write(w io.Writer, payload []byte) error {
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}
