package semantic

import "github.com/cwbudde/flowql/internal/ast"

// Node is the common interface of every semantic-graph node. Location and
// per-node error tracking are inherited directly from ast.BaseNode so that
// diagnostics can point back at the original source regardless of which
// graph (surface or semantic) produced them.
type Node interface {
	node()
}

// Statement is a semantic top-level or block-level statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a semantic expression. Most variants carry a mutable Type
// slot; see each node's doc comment for whether it does.
type Expression interface {
	Node
	expressionNode()
}

// Package is a converted flowql package: one or more files sharing a
// package name, after ConvertWith has run to completion.
type Package struct {
	ast.BaseNode
	Package string
	Files   []*File
}

func (*Package) node() {}

// File is one converted source file.
type File struct {
	ast.BaseNode
	Name    string
	Package string
	Body    []Statement
}

func (*File) node() {}
