package huffman

import (
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

// Tree wire grammar, preorder: an internal node is the single bit 0 followed
// by its left then right subtree; a leaf is the single bit 1 followed by the
// 8-bit symbol. The grammar is self-delimiting, so no node count is stored.

// WriteTree serializes the tree rooted at n to w.
func WriteTree(w *bitio.Writer, n *Node) error {
	if n == nil {
		return errors.New("nil node")
	}
	if n.Leaf() {
		if err := w.WriteBool(true); err != nil {
			return err
		}
		return w.WriteBits(uint64(n.Symbol), 8)
	}
	if err := w.WriteBool(false); err != nil {
		return err
	}
	if err := WriteTree(w, n.Left); err != nil {
		return err
	}
	return WriteTree(w, n.Right)
}

// ReadTree reconstructs a tree serialized by WriteTree. It enforces the node
// cap so a hostile stream cannot recurse unboundedly, and rejects duplicate
// leaf symbols so no two leaves alias the same byte value.
func ReadTree(r *bitio.Reader) (*Node, error) {
	var seen [256]bool
	budget := maxTreeNodes
	return readNode(r, &seen, &budget)
}

func readNode(r *bitio.Reader, seen *[256]bool, budget *int) (*Node, error) {
	if *budget == 0 {
		return nil, fmt.Errorf("tree exceeds %d nodes", maxTreeNodes)
	}
	*budget--

	leaf, err := r.ReadBool()
	if err != nil {
		return nil, fmt.Errorf("read node tag: %w", err)
	}
	if leaf {
		sym, err := r.ReadBits(8)
		if err != nil {
			return nil, fmt.Errorf("read leaf symbol: %w", err)
		}
		if seen[sym] {
			return nil, fmt.Errorf("duplicate leaf symbol %d", sym)
		}
		seen[sym] = true
		return &Node{Symbol: byte(sym)}, nil
	}

	left, err := readNode(r, seen, budget)
	if err != nil {
		return nil, err
	}
	right, err := readNode(r, seen, budget)
	if err != nil {
		return nil, err
	}
	return &Node{Left: left, Right: right, Weight: left.Weight + right.Weight}, nil
}
