package tree

import (
	"encoding/json"
	"fmt"

	"github.com/apcamargo/phylodraw/pkg/errors"
)

// Decode parses and validates a JSON tree document.
//
// The document must be an object carrying an optional boolean "rooted" flag
// at the top level plus the recursive node shape: optional string "name",
// optional non-negative number "length", optional array "children". Any
// other shape fails with an INVALID_TREE error naming the offending field
// and node.
func Decode(data []byte) (*Tree, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "tree document is not valid JSON")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree document must be a JSON object")
	}

	rooted := false
	if v, present := obj["rooted"]; present && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidTree, "field %q: must be a boolean", "rooted")
		}
		rooted = b
	}

	root, err := decodeNode(obj, "root", true)
	if err != nil {
		return nil, err
	}

	return &Tree{Root: root, Rooted: rooted}, nil
}

// decodeNode validates one node object and recurses into its children.
// path identifies the node in error messages ("root", "root.children[1]", ...).
func decodeNode(obj map[string]any, path string, isRoot bool) (*Node, error) {
	n := &Node{}

	if v, present := obj["name"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: field %q must be a string", path, "name")
		}
		n.Name = s
	}

	if v, present := obj["length"]; present && v != nil {
		f, ok := v.(float64)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: field %q must be a number", path, "length")
		}
		if f < 0 {
			return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: field %q must be non-negative, got %v", path, "length", f)
		}
		n.Length = &f
	}

	if _, present := obj["rooted"]; present && !isRoot {
		return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: field %q is only valid on the root", path, "rooted")
	}

	if v, present := obj["children"]; present && v != nil {
		arr, ok := v.([]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: field %q must be an array", path, "children")
		}
		for i, cv := range arr {
			childObj, ok := cv.(map[string]any)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidTree, "node %s: children[%d] must be an object", path, i)
			}
			child, err := decodeNode(childObj, fmt.Sprintf("%s.children[%d]", path, i), false)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}

	return n, nil
}
