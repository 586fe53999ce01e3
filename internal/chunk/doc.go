// Package chunk holds the single mutable stream every formatter stage works on.
//
// A List is an arena of *Chunk addressed by Index (1-based, 0 means none).
// Document order is a doubly linked chain of indices, so inserting a chunk
// never invalidates an Index held by an earlier stage, and cross links such as
// Match are plain indices rather than pointers.
//
// Chunks are created by the lexer and, for synthetic braces, by the brace
// materializer. Nothing deletes chunks; later stages only mutate attributes.
package chunk
