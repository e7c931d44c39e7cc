// Package submission defines the wire form of a finished run and reads and
// writes it as JSON, optionally zstd-compressed.
package submission

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
)

// Mode says which leaderboard a run belongs to.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// Submission is a client's claim about one run: the seed it played, the
// outcome it reports and the full input history that must reproduce it.
type Submission struct {
	Mode        Mode          `json:"mode"`
	Seed        string        `json:"seed"`
	ServerNonce string        `json:"serverNonce,omitempty"`
	Result      engine.Result `json:"result"`
}

// New builds a submission from a sealed result.
func New(mode Mode, seed, nonce string, r engine.Result) Submission {
	return Submission{Mode: mode, Seed: seed, ServerNonce: nonce, Result: r}
}

// ErrInvalid reports a document that does not match the submission schema.
var ErrInvalid = errors.New("submission: invalid document")

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://boulder-daily/schemas/submission.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Schema returns the embedded JSON schema document.
func Schema() string {
	return schemaJSON
}

// Validate checks raw JSON against the submission schema.
func Validate(raw []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("submission: compile schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Decode validates raw JSON and unmarshals it.
func Decode(raw []byte) (Submission, error) {
	if err := Validate(raw); err != nil {
		return Submission{}, err
	}
	var sub Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return sub, nil
}

// Encode marshals a submission. The output always passes Validate.
func Encode(sub Submission) ([]byte, error) {
	if sub.Result.History == nil {
		sub.Result.History = engine.History{}
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("submission: encode: %w", err)
	}
	return data, nil
}
