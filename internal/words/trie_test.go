package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrie(t *testing.T) {
	root := BuildTrie([]string{"casa", "caso", "Cas", "queso", "año", ""})

	assert.True(t, root.Contains("CASA"))
	assert.True(t, root.Contains("caso"))
	assert.True(t, root.Contains("cas"))
	assert.False(t, root.Contains("ca"), "prefix is not a word")
	assert.True(t, root.Contains("AÑO"))
	assert.False(t, root.IsWord, "root is the empty prefix")

	ca := root.Walk("CA")
	require.NotNil(t, ca)
	assert.Len(t, ca.Children, 1)
	assert.Len(t, root.Walk("CAS").Children, 2)
}

func TestWalkMultiLetterTile(t *testing.T) {
	root := BuildTrie([]string{"queso"})
	q := root.Walk("QU")
	require.NotNil(t, q)
	assert.NotNil(t, q.Child('E'))
	assert.Nil(t, root.Walk("QA"))
	assert.Nil(t, root.Walk("X"))
}

func TestNilNodeIsSafe(t *testing.T) {
	var n *TrieNode
	assert.Nil(t, n.Child('A'))
	assert.Nil(t, n.Walk("AB"))
}
