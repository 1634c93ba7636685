package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Workspace - Canonical Serialization Format
// =============================================================================

// Workspace is the canonical serialization format for a diagram: the struct
// definitions, the placed instances, and the pointer connections between them.
//
// The format is human-readable and designed for round-trip fidelity: the
// engine only needs these three lists preserved verbatim across save/load to
// operate correctly afterward.
type Workspace struct {
	Name        string              `json:"name,omitempty" bson:"name,omitempty"`
	Structs     []StructDefinition  `json:"structs" bson:"structs"`
	Instances   []StructInstance    `json:"instances" bson:"instances"`
	Connections []PointerConnection `json:"connections" bson:"connections"`
}

// Definitions returns the workspace's struct definitions indexed by name.
func (w Workspace) Definitions() map[string]StructDefinition {
	return DefinitionIndex(w.Structs)
}

// Validate checks referential integrity and returns the ids of connections
// whose endpoints are missing. Dangling connections are not an error - the
// graph is allowed to be transiently inconsistent during interactive editing -
// but callers may want to surface them.
func (w Workspace) Validate() (dangling []string) {
	known := make(map[string]bool, len(w.Instances))
	for _, inst := range w.Instances {
		known[inst.ID] = true
	}
	for _, c := range w.Connections {
		if !known[c.SourceInstanceID] || !known[c.TargetInstanceID] {
			dangling = append(dangling, c.ID)
		}
	}
	return dangling
}

// =============================================================================
// Workspace Serialization API
// =============================================================================

// MarshalWorkspace converts a workspace to pretty-printed JSON bytes.
func MarshalWorkspace(w Workspace) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeWorkspaceTo(w, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalWorkspace deserializes JSON bytes into a Workspace.
func UnmarshalWorkspace(data []byte) (Workspace, error) {
	return readWorkspaceFrom(bytes.NewReader(data))
}

// WriteWorkspace writes a workspace as JSON to an io.Writer.
func WriteWorkspace(w Workspace, out io.Writer) error {
	return writeWorkspaceTo(w, out)
}

// WriteWorkspaceFile writes a workspace to a JSON file.
// The file is created with 0644 permissions.
func WriteWorkspaceFile(w Workspace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeWorkspaceTo(w, f)
}

// ReadWorkspace decodes a JSON workspace from an io.Reader.
func ReadWorkspace(r io.Reader) (Workspace, error) {
	return readWorkspaceFrom(r)
}

// ReadWorkspaceFile reads a JSON file and returns the decoded workspace.
func ReadWorkspaceFile(path string) (Workspace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Workspace{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readWorkspaceFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeWorkspaceTo(w Workspace, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readWorkspaceFrom(r io.Reader) (Workspace, error) {
	var w Workspace
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Workspace{}, fmt.Errorf("decode: %w", err)
	}
	return w, nil
}
