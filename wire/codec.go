package wire

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec produces the (binary, json) pair every message builder returns:
// binary is what actually goes on the wire inside a frame, json is a
// debug-only rendering for logging.
type Codec interface {
	Marshal(w *Wrapper) (binary []byte, pretty []byte, err error)
	Unmarshal(body []byte) (*Wrapper, error)
}

// DefaultCodec encodes the wire binary form with msgpack and the debug form
// with encoding/json. The JSON half only ever faces a log line.
type DefaultCodec struct{}

func (DefaultCodec) Marshal(w *Wrapper) ([]byte, []byte, error) {
	bin, err := msgpack.Marshal(w)
	if err != nil {
		return nil, nil, fmt.Errorf("wire: marshal binary: %w", err)
	}
	pretty, err := json.Marshal(w)
	if err != nil {
		return nil, nil, fmt.Errorf("wire: marshal json: %w", err)
	}
	return bin, pretty, nil
}

func (DefaultCodec) Unmarshal(body []byte) (*Wrapper, error) {
	w := &Wrapper{}
	if err := msgpack.Unmarshal(body, w); err != nil {
		return nil, fmt.Errorf("wire: unmarshal: %w", err)
	}
	return w, nil
}
