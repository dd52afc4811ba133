// Package ast provides the arena-backed JavaScript syntax tree used by remap.
//
// This package contains the tree, its node kinds and the structural
// operations every pass relies on. All other internal packages import ast;
// ast imports nothing internal.
//
// Key design constraints:
//   - Nodes live in a Tree arena and are addressed by stable NodeID values
//   - NoNode (0) is the nil sentinel, never a real node
//   - Parent links are maintained by every mutating operation
//   - A node has exactly one parent; sharing an expression requires Clone
//   - Document field names follow the Babel/ESTree shape
package ast
