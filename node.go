package formula

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-formula/platform/expression"
)

// Node is one element of a parsed formula. Compile walks a tree of nodes
// bottom-up and turns it into a single Evaluator.
type Node interface {
	node()
}

// Literal is a constant value written in the formula.
type Literal struct {
	Type  expression.Type
	Value any
}

// Column reads the named value of the row being evaluated.
type Column struct {
	Name string
	Type expression.Type
}

// Call applies the function or operator Function to the compiled Args.
type Call struct {
	Function string
	Args     []Node
}

// Ref names a constant of a loaded module, such as "pi".
type Ref struct {
	Name string
}

// Leaf wraps an Evaluator built elsewhere.
type Leaf struct {
	Evaluator *expression.Evaluator
}

func (Literal) node() {}
func (Column) node()  {}
func (Call) node()    {}
func (Ref) node()     {}
func (Leaf) node()    {}

func (n Literal) String() string {
	return expression.FormatValue(n.Type, n.Value)
}

func (n Column) String() string {
	return "[" + n.Name + "]"
}

func (n Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = fmt.Sprint(a)
	}
	return n.Function + "(" + strings.Join(args, ", ") + ")"
}

func (n Ref) String() string {
	return n.Name
}

func (n Leaf) String() string {
	return fmt.Sprint(n.Evaluator)
}

// Fn is shorthand for a Call node.
func Fn(name string, args ...Node) Call {
	return Call{Function: name, Args: args}
}

// Num is shorthand for a Double literal.
func Num(v float64) Literal {
	return Literal{Type: expression.Double, Value: v}
}

// Int is shorthand for an Integer literal.
func Int(v int64) Literal {
	return Literal{Type: expression.Integer, Value: v}
}

// Text is shorthand for a String literal.
func Text(v string) Literal {
	return Literal{Type: expression.String, Value: v}
}

// Bool is shorthand for a Boolean literal.
func Bool(v bool) Literal {
	return Literal{Type: expression.Boolean, Value: v}
}
