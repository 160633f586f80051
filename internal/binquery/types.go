package binquery

import "strings"

// Expr is one node of a parsed query.
//
// This is a sealed interface: the marker method keeps implementations inside
// this package, so a backend compiler's type switch covers every case.
type Expr interface {
	exprNode()
}

// Op is a comparison operator.
type Op string

const (
	OpEqual    Op = "="
	OpNotEqual Op = "!="
)

// Compare is one key/value comparison. Keys are setting paths ("os",
// "compiler.version"), option names ("shared") or package-qualified option
// names ("hello:shared").
type Compare struct {
	Key   string
	Op    Op
	Value string
}

func (Compare) exprNode() {}

// And is a conjunction. Every term must match.
type And struct {
	Terms []Expr
}

func (And) exprNode() {}

// Or is a disjunction. At least one term must match.
type Or struct {
	Terms []Expr
}

func (Or) exprNode() {}

// Not negates its operand.
type Not struct {
	Expr Expr
}

func (Not) exprNode() {}

// String renders the expression back to query syntax, parenthesizing nested
// boolean nodes. Values containing spaces are quoted.
func String(e Expr) string {
	var b strings.Builder
	render(&b, e, false)
	return b.String()
}

func render(b *strings.Builder, e Expr, nested bool) {
	switch node := e.(type) {
	case Compare:
		b.WriteString(node.Key)
		b.WriteString(string(node.Op))
		if strings.ContainsAny(node.Value, " \t()") {
			b.WriteByte('"')
			b.WriteString(node.Value)
			b.WriteByte('"')
		} else {
			b.WriteString(node.Value)
		}
	case And:
		renderList(b, node.Terms, " AND ", nested)
	case Or:
		renderList(b, node.Terms, " OR ", nested)
	case Not:
		b.WriteString("NOT ")
		render(b, node.Expr, true)
	}
}

func renderList(b *strings.Builder, terms []Expr, sep string, nested bool) {
	if nested {
		b.WriteByte('(')
	}
	for i, term := range terms {
		if i > 0 {
			b.WriteString(sep)
		}
		render(b, term, true)
	}
	if nested {
		b.WriteByte(')')
	}
}
