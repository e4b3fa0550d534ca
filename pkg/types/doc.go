// Package types defines the core data model for refgraph: the snapshot
// rows consumed from upstream, the node/edge graph built from them, and
// the analytics payload returned to callers.
//
// Nodes form a tagged union over UserNodeType and ContactNodeType. Code
// consuming nodes switches exhaustively on Node.Type rather than probing
// optional fields.
package types
