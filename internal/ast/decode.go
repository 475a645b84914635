package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyInput indicates the front-end handed us no JSON at all.
var ErrEmptyInput = errors.New("ast: empty input")

// Decode reads one ESTree JSON document from r and returns its root node.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	var root Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("ast: decode: %w", err)
	}
	if root.Type == "" {
		return nil, errors.New("ast: root node has no type discriminator")
	}
	return &root, nil
}

// DecodeBytes decodes an ESTree JSON document held in memory.
func DecodeBytes(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	return Decode(bytes.NewReader(data))
}
