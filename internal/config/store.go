package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the read side of the settings store. Paths are slash separated
// mapping keys, e.g. "section_0/Q/title".
type Settings interface {
	String(path string) (string, bool)
	Bool(path string) (bool, bool)
	Int(path string) (int, bool)
}

// Store is a hierarchical key/value store backed by a YAML document. The
// document is kept as a node tree so comments and unrelated keys survive a
// Set followed by Sync.
type Store struct {
	path string
	doc  *yaml.Node
}

var _ Settings = (*Store)(nil)

// Open loads the store at path. A missing file yields an empty store that
// will be created on the first Sync.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path, doc: emptyDocument()}, nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse builds an in-memory store from YAML. Sync on such a store is a no-op.
func Parse(data []byte) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Store{doc: emptyDocument()}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		doc.Content[0] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	} else if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("settings root must be a mapping, got %s", kindName(root.Kind))
	}
	return &Store{doc: &doc}, nil
}

// Path returns the file backing the store, or "" for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// String returns the scalar at path. Missing, null and non-scalar values are
// reported as absent.
func (s *Store) String(path string) (string, bool) {
	node := s.lookup(path)
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return "", false
	}
	return node.Value, true
}

// Bool returns the boolean at path. Values that do not decode as a boolean
// are reported as absent.
func (s *Store) Bool(path string) (bool, bool) {
	node := s.lookup(path)
	if node == nil || node.Kind != yaml.ScalarNode {
		return false, false
	}
	var v bool
	if err := node.Decode(&v); err != nil {
		return false, false
	}
	return v, true
}

// Int returns the integer at path. Values that do not decode as an integer
// are reported as absent.
func (s *Store) Int(path string) (int, bool) {
	node := s.lookup(path)
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, false
	}
	var v int
	if err := node.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// Set stores value at path, creating intermediate mappings as needed. Empty
// keys along the path become mappings and aliased mappings are copied before
// they are written to.
func (s *Store) Set(path string, value interface{}) error {
	keys := splitPath(path)
	if len(keys) == 0 {
		return fmt.Errorf("settings: empty path")
	}

	var encoded yaml.Node
	if err := encoded.Encode(value); err != nil {
		return fmt.Errorf("settings: failed to encode %s: %w", path, err)
	}

	current := s.doc.Content[0]
	for i, key := range keys {
		last := i == len(keys)-1
		child := mappingSlot(current, key)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			if last {
				child = &encoded
			}
			current.Content = append(current.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
			current = child
			continue
		}

		if last {
			// An alias slot is replaced, never the anchored node it points at.
			head, line, foot := child.HeadComment, child.LineComment, child.FootComment
			*child = encoded
			child.HeadComment, child.LineComment, child.FootComment = head, line, foot
			return nil
		}

		switch {
		case child.Kind == yaml.AliasNode:
			target := resolveAlias(child)
			if target == nil || target.Kind != yaml.MappingNode {
				return fmt.Errorf("settings: %s is an alias to a non-mapping", strings.Join(keys[:i+1], "/"))
			}
			head, line, foot := child.HeadComment, child.LineComment, child.FootComment
			*child = *copyNode(target)
			child.Anchor = ""
			child.HeadComment, child.LineComment, child.FootComment = head, line, foot
		case child.Kind == yaml.ScalarNode && child.Tag == "!!null":
			*child = yaml.Node{
				Kind:        yaml.MappingNode,
				Tag:         "!!map",
				HeadComment: child.HeadComment,
				LineComment: child.LineComment,
				FootComment: child.FootComment,
			}
		case child.Kind != yaml.MappingNode:
			return fmt.Errorf("settings: %s is a %s, not a mapping", strings.Join(keys[:i+1], "/"), kindName(child.Kind))
		}
		current = child
	}
	return nil
}

// Sync writes the store back to its file atomically.
func (s *Store) Sync() error {
	if s.path == "" {
		return nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.doc); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return atomicWrite(s.path, buf.Bytes(), 0644)
}

func (s *Store) lookup(path string) *yaml.Node {
	keys := splitPath(path)
	if len(keys) == 0 {
		return nil
	}
	current := s.doc.Content[0]
	for _, key := range keys {
		if current.Kind != yaml.MappingNode {
			return nil
		}
		current = mappingValue(current, key)
		if current == nil {
			return nil
		}
	}
	return current
}

// mappingValue returns the value node for key in a mapping node, following
// aliases. Only the last occurrence of a duplicated key counts.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	return resolveAlias(mappingSlot(m, key))
}

// mappingSlot is mappingValue without alias resolution.
func mappingSlot(m *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			found = m.Content[i+1]
		}
	}
	return found
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// copyNode deep-copies n. Aliases inside the copy still point at their
// original anchors; anchors on copied nodes are dropped.
func copyNode(n *yaml.Node) *yaml.Node {
	out := *n
	out.Anchor = ""
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			if c.Kind == yaml.AliasNode {
				alias := *c
				out.Content[i] = &alias
				continue
			}
			out.Content[i] = copyNode(c)
		}
	}
	return &out
}

func splitPath(path string) []string {
	var keys []string
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

func emptyDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}

// atomicWrite writes data to a temp file next to path and renames it into place.
func atomicWrite(path string, data []byte, perms os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".qwerty-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	cleanup := true
	defer func() {
		if cleanup {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(perms); err != nil {
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	cleanup = false
	return nil
}
