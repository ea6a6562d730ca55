// Package huffman implements deterministic Huffman coding over byte alphabets.
package huffman

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrNoSymbols indicates a tree build was attempted on an all-zero frequency table.
var ErrNoSymbols = errors.New("no symbols in frequency table")

// maxTreeNodes caps tree size: a 256-symbol alphabet needs at most 511 nodes
// (256 leaves plus 255 internal nodes).
const maxTreeNodes = 511

// FrequencyTable maps each byte value to its occurrence count.
type FrequencyTable [256]uint64

// Count scans data in a single pass and returns its byte frequency table.
// An empty input yields an all-zero table.
func Count(data []byte) FrequencyTable {
	var freqs FrequencyTable
	for _, b := range data {
		freqs[b]++
	}
	return freqs
}

// Distinct returns the number of byte values with a non-zero count.
func (f *FrequencyTable) Distinct() int {
	n := 0
	for _, count := range f {
		if count > 0 {
			n++
		}
	}
	return n
}

// Node is one node of a Huffman tree. A node is a leaf when both children
// are nil; internal nodes always have exactly two children and a weight equal
// to the sum of their children's weights.
type Node struct {
	Left, Right *Node
	Weight      uint64
	Symbol      byte // meaningful for leaves only

	seq int32 // creation order, breaks weight ties deterministically
}

// Leaf reports whether n is a leaf node.
func (n *Node) Leaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaf nodes under n.
func (n *Node) Leaves() int {
	if n.Leaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// nodeHeap orders nodes by weight, then by creation sequence.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}

// Build constructs the Huffman tree for freqs and returns its root.
//
// Leaves are seeded in ascending byte order and every node carries a creation
// sequence number; equal weights compare by that sequence, the earlier node
// popping first and becoming the left child. The same frequency table
// therefore always yields a structurally identical tree, which the container
// format depends on.
//
// A table with a single distinct byte yields a tree that is just that leaf.
func Build(freqs FrequencyTable) (*Node, error) {
	h := make(nodeHeap, 0, 256)
	seq := int32(0)
	for sym := 0; sym < 256; sym++ {
		if freqs[sym] == 0 {
			continue
		}
		h = append(h, &Node{Weight: freqs[sym], Symbol: byte(sym), seq: seq})
		seq++
	}
	if len(h) == 0 {
		return nil, ErrNoSymbols
	}

	heap.Init(&h)
	for h.Len() > 1 {
		left := heap.Pop(&h).(*Node)
		right := heap.Pop(&h).(*Node)
		heap.Push(&h, &Node{
			Left:   left,
			Right:  right,
			Weight: left.Weight + right.Weight,
			seq:    seq,
		})
		seq++
	}
	return h[0], nil
}

// Validate checks that the tree rooted at n is full (every internal node has
// two children), stays within the node cap, and assigns each leaf a distinct
// symbol.
func (n *Node) Validate() error {
	var seen [256]bool
	budget := maxTreeNodes
	return validateNode(n, &seen, &budget)
}

func validateNode(n *Node, seen *[256]bool, budget *int) error {
	if n == nil {
		return errors.New("nil node")
	}
	if *budget == 0 {
		return fmt.Errorf("tree exceeds %d nodes", maxTreeNodes)
	}
	*budget--

	if n.Leaf() {
		if seen[n.Symbol] {
			return fmt.Errorf("duplicate leaf symbol %d", n.Symbol)
		}
		seen[n.Symbol] = true
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return errors.New("internal node with a single child")
	}
	if err := validateNode(n.Left, seen, budget); err != nil {
		return err
	}
	return validateNode(n.Right, seen, budget)
}
