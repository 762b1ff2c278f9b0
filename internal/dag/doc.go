// Package dag owns the file dependency graph: a deduplicated edge list, the
// derived node set, per-node descriptor merge, and structural role
// classification. The graph is built once from the full pair set and is
// immutable afterwards; every accessor that feeds an output artifact
// returns results in an explicit, reproducible order.
package dag
