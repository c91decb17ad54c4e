package datrie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTrie(t *testing.T, keys []string) (*Trie, map[string]int32) {
	t.Helper()
	values := make(map[string]int32, len(keys))
	for i, k := range keys {
		values[k] = int32(i)
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	byteKeys := make([][]byte, len(sorted))
	vals := make([]int32, len(sorted))
	for i, k := range sorted {
		byteKeys[i] = []byte(k)
		vals[i] = values[k]
	}

	tr, err := Build(BuildOptions{Keys: byteKeys, Values: vals})
	require.NoError(t, err)
	return tr, values
}

func TestExactMatchSingleton(t *testing.T) {
	tr, values := buildTrie(t, []string{"a"})
	require.Equal(t, values["a"], tr.ExactMatch([]byte("a")))
	require.Equal(t, NoValue, tr.ExactMatch([]byte("b")))
	require.Equal(t, NoValue, tr.ExactMatch([]byte("ab")))
}

func TestExactMatchPrefixPair(t *testing.T) {
	tr, values := buildTrie(t, []string{"a", "ab"})
	require.Equal(t, values["a"], tr.ExactMatch([]byte("a")))
	require.Equal(t, values["ab"], tr.ExactMatch([]byte("ab")))
	require.Equal(t, NoValue, tr.ExactMatch([]byte("abc")))
}

func TestExactMatchBranching(t *testing.T) {
	keys := []string{"cat", "car", "cart", "dog", "do"}
	tr, values := buildTrie(t, keys)
	for _, k := range keys {
		require.Equal(t, values[k], tr.ExactMatch([]byte(k)), k)
	}
	require.Equal(t, NoValue, tr.ExactMatch([]byte("ca")))
	require.Equal(t, NoValue, tr.ExactMatch([]byte("doge")))
	require.Equal(t, NoValue, tr.ExactMatch([]byte("")))
}

func TestExactMatchSharedSuffixCanonicalization(t *testing.T) {
	// "ax", "bx", "cx" share the suffix "x", but their values differ, so the
	// DAWG keeps their leaves apart and each key resolves to its own value.
	keys := []string{"ax", "bx", "cx"}
	tr, values := buildTrie(t, keys)
	for _, k := range keys {
		require.Equal(t, values[k], tr.ExactMatch([]byte(k)), k)
	}
}

func TestCommonPrefixSearch(t *testing.T) {
	keys := []string{"a", "ab", "abc", "abcd"}
	tr, values := buildTrie(t, keys)

	matches := tr.CommonPrefixSearch([]byte("abcde"), 0)
	require.Len(t, matches, 4)
	for i, want := range keys {
		require.Equal(t, i+1, matches[i].Length)
		require.Equal(t, values[want], matches[i].Value)
	}
}

func TestCommonPrefixSearchMaxResults(t *testing.T) {
	keys := []string{"a", "ab", "abc"}
	tr, _ := buildTrie(t, keys)
	matches := tr.CommonPrefixSearch([]byte("abc"), 2)
	require.Len(t, matches, 2)
}

func TestCommonPrefixSearchNoMatch(t *testing.T) {
	tr, _ := buildTrie(t, []string{"hello"})
	require.Empty(t, tr.CommonPrefixSearch([]byte("world"), 0))
}

func TestTraverseResumption(t *testing.T) {
	tr, values := buildTrie(t, []string{"cat", "cats"})

	var pos uint32
	var n int
	require.Equal(t, NoValue, tr.Traverse([]byte("ca"), &pos, &n))
	require.Equal(t, 2, n)

	// Resume from "ca" by feeding "cat" with the same cursor.
	got := tr.Traverse([]byte("cat"), &pos, &n)
	require.Equal(t, values["cat"], got)
	require.Equal(t, 3, n)

	got = tr.Traverse([]byte("cats"), &pos, &n)
	require.Equal(t, values["cats"], got)
}

func TestTraverseRejectsUnknownByte(t *testing.T) {
	tr, _ := buildTrie(t, []string{"cat"})
	var pos uint32
	var n int
	require.Equal(t, NoTraversal, tr.Traverse([]byte("cz"), &pos, &n))
}

func TestEnumerateVisitsEveryKeyInOrder(t *testing.T) {
	keys := []string{"dog", "cat", "car", "cart", "do"}
	tr, values := buildTrie(t, keys)

	var got []string
	tr.Enumerate(func(key []byte, value int32) EnumAction {
		k := string(key)
		require.Equal(t, values[k], value)
		got = append(got, k)
		return Continue
	})

	want := append([]string(nil), keys...)
	sort.Strings(want)
	require.Equal(t, want, got)
}

func TestNumNodesAndEdges(t *testing.T) {
	tr, _ := buildTrie(t, []string{"cat", "car", "cart"})
	// root, c, a, t, r, (cart's) t = 6 nodes; one edge per parent-child link.
	require.Equal(t, 6, tr.NumNodes())
	require.Equal(t, 5, tr.NumEdges())
}

func TestEnumerateStop(t *testing.T) {
	tr, _ := buildTrie(t, []string{"a", "b", "c"})
	var got []string
	tr.Enumerate(func(key []byte, value int32) EnumAction {
		got = append(got, string(key))
		return Stop
	})
	require.Len(t, got, 1)
}
