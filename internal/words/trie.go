package words

import "strings"

// TrieNode is one node of the prefix tree over the dictionary. Keys are
// single uppercase letters; the root stands for the empty prefix.
type TrieNode struct {
	Children map[rune]*TrieNode
	IsWord   bool
}

func newNode() *TrieNode {
	return &TrieNode{Children: make(map[rune]*TrieNode)}
}

// Child returns the node reached by following r, or nil.
func (n *TrieNode) Child(r rune) *TrieNode {
	if n == nil {
		return nil
	}
	return n.Children[r]
}

// Walk follows every letter of s in order and returns the node reached,
// or nil as soon as a letter has no edge.
func (n *TrieNode) Walk(s string) *TrieNode {
	cur := n
	for _, r := range s {
		cur = cur.Child(r)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Contains reports whether word (any case) was inserted.
func (n *TrieNode) Contains(word string) bool {
	end := n.Walk(strings.ToUpper(word))
	return end != nil && end.IsWord
}

func (n *TrieNode) insert(word string) {
	cur := n
	for _, r := range word {
		next, ok := cur.Children[r]
		if !ok {
			next = newNode()
			cur.Children[r] = next
		}
		cur = next
	}
	cur.IsWord = true
}

// BuildTrie constructs a trie over words, folding each entry to uppercase.
// Empty entries are skipped.
func BuildTrie(words []string) *TrieNode {
	root := newNode()
	for _, w := range words {
		w = strings.ToUpper(Fold(w))
		if w == "" {
			continue
		}
		root.insert(w)
	}
	return root
}
