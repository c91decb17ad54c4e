/*
Package datrie implements a static double-array trie: an immutable mapping
from sorted byte-string keys to nonnegative int32 values, packed into a flat
array of XOR-offset units for fast exact-match, common-prefix-search, and
incremental traversal queries.

Construction happens in two stages, hidden behind Build/BuildStrings and the
incremental Builder. First, the keys are minimized into a Directed Acyclic
Word Graph, merging identical subtrees (a suffix shared by more than one key
and ending in the same value) into one. Second, that DAWG is packed into a double array by searching, for
each node, an XOR offset that places all of its children at distinct,
previously unused array slots.

The packed array is a plain []Unit, and so queries need no pointer-chasing
or heap traffic once built: looking up a key is a handful of array reads and
XORs. The array can be persisted with Save and reopened with Load, which
memory-maps the file and decodes the units from the mapping into a new array.
*/
package datrie
