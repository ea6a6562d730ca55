package huffman

import (
	"errors"
)

// maxCodeLen bounds root-to-leaf paths so every code fits the Bits field.
const maxCodeLen = 64

// Code is one prefix code: the lowest Len bits of Bits, most significant
// code bit first.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders the code as a bit string, e.g. "110".
func (c Code) String() string {
	buf := make([]byte, c.Len)
	for i := uint8(0); i < c.Len; i++ {
		if c.Bits&(1<<(c.Len-1-i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// CodeTable maps each byte value to its prefix code. Len == 0 marks byte
// values absent from the input.
type CodeTable [256]Code

// Codes walks the tree and assigns every leaf the bit path from the root,
// 0 for a left turn and 1 for a right turn. Codes are prefix-free because
// leaves of a full binary tree share no path. A single-leaf tree maps its
// symbol to the one-bit code "0".
//
// Errors indicate a malformed tree (an internal node with one child, or a
// path beyond 64 bits), never a property of the input data.
func (n *Node) Codes() (CodeTable, error) {
	var table CodeTable
	if n == nil {
		return table, errors.New("nil root")
	}
	if n.Leaf() {
		table[n.Symbol] = Code{Bits: 0, Len: 1}
		return table, nil
	}
	if err := fillCodes(&table, n, 0, 0); err != nil {
		return CodeTable{}, err
	}
	return table, nil
}

// fillCodes assigns codes below n, whose own path from the root is the depth
// lowest bits of bits.
func fillCodes(table *CodeTable, n *Node, bits uint64, depth uint8) error {
	if n.Leaf() {
		table[n.Symbol] = Code{Bits: bits, Len: depth}
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return errors.New("internal node with a single child")
	}
	if depth == maxCodeLen {
		return errors.New("code exceeds 64 bits")
	}
	if err := fillCodes(table, n.Left, bits<<1, depth+1); err != nil {
		return err
	}
	return fillCodes(table, n.Right, bits<<1|1, depth+1)
}
