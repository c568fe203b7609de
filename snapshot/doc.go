// Package snapshot persists crystal maps in a self-describing binary
// format.
//
// A snapshot starts with a fixed header (magic, format version, codec
// name, compression) followed by named sections. The meta section is
// codec-encoded and carries the phase list, scan shape and column
// inventory; the remaining sections are little-endian numeric columns,
// each framed as one compression block. Blocks that barely shrink are
// stored raw, so compression never makes a snapshot bigger than the
// framing overhead.
//
// Snapshots of a selection persist the materialized selection, not the
// underlying full map.
package snapshot
