package parse

import "src.litecode.dev/pkg/diag"

// Stmt is a recognized statement. Its range covers the line without
// surrounding whitespace.
type Stmt interface {
	diag.Ranger
	isStmt()
}

// Ident is an identifier together with its position.
type Ident struct {
	diag.Ranging
	Name string
}

// ExprText is the text of an expression together with its position.
type ExprText struct {
	diag.Ranging
	Text string
}

// TypedDecl is "let <name> be a|an <Type>".
type TypedDecl struct {
	diag.Ranging
	Name Ident
	// One of "String", "Integer" and "Float".
	Type string
}

// LetInit is "let <name> be <expr>".
type LetInit struct {
	diag.Ranging
	Name Ident
	Expr ExprText
}

// Assign is "<name> = <expr>".
type Assign struct {
	diag.Ranging
	Name Ident
	Expr ExprText
}

// Display is `display("<template>", <args>)`. Args are the identifier-shaped
// tokens of the argument list.
type Display struct {
	diag.Ranging
	Template      string
	TemplateRange diag.Ranging
	Args          []Ident
}

func (*TypedDecl) isStmt() {}
func (*LetInit) isStmt()   {}
func (*Assign) isStmt()    {}
func (*Display) isStmt()   {}
