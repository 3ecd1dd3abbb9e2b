package internal

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Node Type (one key-value pair of a chain)
// --------------------------------------------------------------------------

// Node is one entry of a bucket chain. A node owns its successor: unlinking a
// node hands the rest of the chain over to the predecessor.
// The key never changes once the node is linked.
type Node struct {
	key   string
	Value string
	next  *Node
}

// newNode builds a fully initialized node holding its own copies of key and value,
// so that the caller's strings (e.g. slices of a larger input line) are not retained.
func newNode(key, value string) *Node {
	return &Node{
		key:   strings.Clone(key),
		Value: strings.Clone(value),
	}
}

// Key returns the key of the node
func (n *Node) Key() string {
	return n.key
}

// Next returns the successor of the node or nil at the end of the chain
func (n *Node) Next() *Node {
	return n.next
}

func (n *Node) String() string {
	return fmt.Sprintf("[%s,%s]", n.key, n.Value)
}

// --------------------------------------------------------------------------
// Chain Operations
// --------------------------------------------------------------------------

// Insert appends a node for key to the chain starting at head, unless a node for key
// already exists. In that case the chain is left untouched and the existing node is
// returned with inserted=false, the stored value is NOT overwritten.
// The returned head must be stored back into the bucket.
func Insert(head *Node, key, value string) (newHead *Node, node *Node, inserted bool) {
	if head == nil {
		n := newNode(key, value)
		return n, n, true
	}

	curr := head
	for {
		if curr.key == key {
			return head, curr, false
		}
		if curr.next == nil {
			break
		}
		curr = curr.next
	}

	// the node is complete before it becomes reachable
	n := newNode(key, value)
	curr.next = n

	return head, n, true
}

// Find returns the node for key or nil if the chain holds no such key
func Find(head *Node, key string) *Node {
	for curr := head; curr != nil; curr = curr.next {
		if curr.key == key {
			return curr
		}
	}
	return nil
}

// Update replaces the value of the node for key with a copy of value.
// It returns the updated node or nil if the key is not in the chain.
func Update(head *Node, key, value string) *Node {
	n := Find(head, key)
	if n == nil {
		return nil
	}

	n.Value = strings.Clone(value)
	return n
}

// Delete unlinks the node for key and returns the new head of the chain.
// Removing the head promotes its successor. If no node matches, head is returned unchanged.
func Delete(head *Node, key string) (newHead *Node, removed bool) {
	var prev *Node
	for curr := head; curr != nil; prev, curr = curr, curr.next {
		if curr.key != key {
			continue
		}

		next := curr.next
		curr.next = nil

		if prev == nil {
			return next, true
		}
		prev.next = next
		return head, true
	}

	return head, false
}

// Release detaches every node of the chain so nothing stays reachable through
// a node a caller might still hold. It returns the number of released nodes.
// The chain is walked in a loop, its length does not affect stack depth.
func Release(head *Node) int {
	released := 0
	for curr := head; curr != nil; {
		next := curr.next
		curr.next = nil
		curr.Value = ""
		curr = next
		released++
	}
	return released
}

// Len returns the number of nodes in the chain
func Len(head *Node) int {
	n := 0
	for curr := head; curr != nil; curr = curr.next {
		n++
	}
	return n
}
