package toc

import "git.home.luguber.info/inful/booktoc/internal/pathkey"

// Find searches n and its descendants depth-first, pre-order, left to right.
// The first match wins.
func Find(n *Node, key pathkey.Key) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if k, ok := n.Key(); ok && k == key {
		return n, true
	}
	for _, child := range n.Sections {
		if found, ok := Find(child, key); ok {
			return found, true
		}
	}
	return nil, false
}
