package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ember/internal/ast"
)

// ASTNodeOutput is the JSON shape of a node. Fields holds the scalar
// attributes (name, operator, text); children are grouped by role.
type ASTNodeOutput struct {
	Type     string                     `json:"type"`
	Line     uint32                     `json:"line"`
	Column   uint32                     `json:"column"`
	Start    uint32                     `json:"start"`
	End      uint32                     `json:"end"`
	Fields   map[string]string          `json:"fields,omitempty"`
	Children map[string][]ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTJSON writes the program as {"statements": [...]}.
func FormatASTJSON(w io.Writer, stmts []ast.Stmt) error {
	out := struct {
		Statements []ASTNodeOutput `json:"statements"`
	}{Statements: nodesJSON(stmts)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nodesJSON[N ast.Node](nodes []N) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeJSON(n))
	}
	return out
}

func nodeJSON(n ast.Node) ASTNodeOutput {
	r := n.Loc()
	o := ASTNodeOutput{
		Type:   n.Kind().String(),
		Line:   r.Pos.Line + 1,
		Column: r.Pos.Column + 1,
		Start:  r.Span.Start,
		End:    r.Span.End,
	}
	label, children := describe(n)
	if len(label) > 0 {
		o.Fields = label
	}
	for _, c := range children {
		if o.Children == nil {
			o.Children = make(map[string][]ASTNodeOutput)
		}
		o.Children[c.role] = append(o.Children[c.role], nodeJSON(c.node))
	}
	return o
}

type child struct {
	role string
	node ast.Node
}

// describe returns the scalar fields and the children of n in source order.
func describe(n ast.Node) (map[string]string, []child) {
	switch n := n.(type) {
	case *ast.Assignment:
		return map[string]string{"name": n.Name}, []child{{"expression", n.Expression}}
	case *ast.FunctionCall:
		cs := make([]child, 0, len(n.Arguments))
		for _, a := range n.Arguments {
			cs = append(cs, child{"arguments", a})
		}
		return map[string]string{"name": n.Name}, cs
	case *ast.If:
		cs := []child{{"condition", n.Condition}}
		for _, s := range n.Body {
			cs = append(cs, child{"body", s})
		}
		for _, s := range n.ElseBody {
			cs = append(cs, child{"else", s})
		}
		return nil, cs
	case *ast.Unary:
		return map[string]string{"operator": n.Operator.String()}, []child{{"operand", n.Operand}}
	case *ast.Binary:
		return map[string]string{"operator": n.Operator.String()}, []child{{"left", n.Left}, {"right", n.Right}}
	case *ast.NumberLiteral:
		return map[string]string{"text": n.Text}, nil
	case *ast.StringLiteral:
		return map[string]string{"text": n.Text}, nil
	case *ast.VariableRef:
		return map[string]string{"name": n.Name}, nil
	}
	return nil, nil
}

// FormatASTPretty prints the program as a box-drawn tree:
//
//	Program
//	└─ Assignment x (1:1)
//	   └─ Binary + (1:5)
func FormatASTPretty(w io.Writer, stmts []ast.Stmt) error {
	root := &treeNode{label: fmt.Sprintf("Program (%d statements)", len(stmts))}
	for _, s := range stmts {
		root.children = append(root.children, buildTree("", s))
	}
	var sb strings.Builder
	writeTree(&sb, root, "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

type treeNode struct {
	label    string
	children []*treeNode
}

func buildTree(role string, n ast.Node) *treeNode {
	fields, children := describe(n)
	label := n.Kind().String()
	for _, key := range []string{"name", "operator", "text"} {
		if v, ok := fields[key]; ok {
			if _, isStr := n.(*ast.StringLiteral); isStr {
				v = "'" + v + "'"
			}
			label += " " + v
		}
	}
	label += fmt.Sprintf(" (%s)", n.Loc().Pos)
	if role != "" {
		label = role + ": " + label
	}
	t := &treeNode{label: label}

	// у If роли различаются, у остальных узлов они очевидны из типа
	_, isIf := n.(*ast.If)
	for _, c := range children {
		r := ""
		if isIf {
			r = c.role
		}
		t.children = append(t.children, buildTree(r, c.node))
	}
	return t
}

func writeTree(sb *strings.Builder, n *treeNode, prefix string, last, root bool) {
	switch {
	case root:
		sb.WriteString(n.label)
	case last:
		sb.WriteString(prefix + "└─ " + n.label)
	default:
		sb.WriteString(prefix + "├─ " + n.label)
	}
	sb.WriteByte('\n')

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, c := range n.children {
		writeTree(sb, c, childPrefix, i == len(n.children)-1, false)
	}
}
