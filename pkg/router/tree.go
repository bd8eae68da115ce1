package router

import (
	"fmt"
	"strings"

	"github.com/vango-dev/showcase/pkg/routepath"
)

// node is a node in the route tree.
type node struct {
	// segment is the static path segment this node matches
	segment string

	// isParam indicates this is a parameter segment (:id)
	isParam bool

	// isCatchAll indicates this is a catch-all segment (*slug)
	isCatchAll bool

	// paramName is the parameter name (without : or *)
	paramName string

	handler Handler
	pattern string

	// children are static segment children
	children []*node

	// paramChild is the dynamic parameter child (:id)
	paramChild *node

	// catchAllChild is the catch-all child (*slug)
	catchAllChild *node
}

// findChild finds a static child. Segments compare case-insensitively.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if strings.EqualFold(child.segment, segment) {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{segment: segment}
	n.children = append(n.children, child)
	return child
}

// addParamChild sets the parameter child node.
func (n *node) addParamChild(name string) (*node, error) {
	if n.paramChild != nil {
		if n.paramChild.paramName != name {
			return nil, fmt.Errorf("parameter :%s conflicts with :%s", name, n.paramChild.paramName)
		}
		return n.paramChild, nil
	}
	n.paramChild = &node{isParam: true, paramName: name}
	return n.paramChild, nil
}

// addCatchAllChild sets the catch-all child node.
func (n *node) addCatchAllChild(name string) (*node, error) {
	if name == "" {
		name = "*"
	}
	if n.catchAllChild != nil {
		if n.catchAllChild.paramName != name {
			return nil, fmt.Errorf("catch-all *%s conflicts with *%s", name, n.catchAllChild.paramName)
		}
		return n.catchAllChild, nil
	}
	n.catchAllChild = &node{isCatchAll: true, paramName: name}
	return n.catchAllChild, nil
}

// insert adds a pattern to the tree and returns its terminal node.
func (n *node) insert(pattern string) (*node, error) {
	segments := routepath.Split(pattern)
	current := n

	for i, seg := range segments {
		var err error
		switch {
		case strings.HasPrefix(seg, "*"):
			if i != len(segments)-1 {
				return nil, fmt.Errorf("catch-all must be the last segment")
			}
			current, err = current.addCatchAllChild(seg[1:])
		case strings.HasPrefix(seg, ":"):
			if len(seg) == 1 {
				return nil, fmt.Errorf("parameter without a name")
			}
			current, err = current.addParamChild(seg[1:])
		default:
			current = current.addChild(seg)
		}
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// match finds the node for segments. It returns the node and the segments
// left over for a catch-all. Static children are tried first, then the
// parameter child, then the catch-all; a failed branch is undone before the
// next one is tried.
func (n *node) match(segments []string, params Params) (*node, []string, bool) {
	if len(segments) == 0 {
		if n.handler != nil {
			return n, nil, true
		}
		// A catch-all matches the empty remainder.
		if c := n.catchAllChild; c != nil && c.handler != nil {
			params[c.paramName] = ""
			return c, nil, true
		}
		return nil, nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if found, rest, ok := child.match(remaining, params); ok {
			return found, rest, true
		}
	}

	if c := n.paramChild; c != nil {
		if value, err := routepath.DecodeSegment(segment, false); err == nil {
			params[c.paramName] = value
			if found, rest, ok := c.match(remaining, params); ok {
				return found, rest, true
			}
			// Backtrack on failure
			delete(params, c.paramName)
		}
	}

	if c := n.catchAllChild; c != nil && c.handler != nil {
		params[c.paramName] = strings.Join(segments, "/")
		return c, segments, true
	}

	return nil, nil, false
}
