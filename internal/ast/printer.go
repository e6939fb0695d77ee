package ast

import "strings"

// PrettyPrint renders n and its descendants as an indented tree, one node
// per line. Used by the driver's -verbose mode and by tests asserting on
// parse-tree shape.
func PrettyPrint(n Node) string {
	var sb strings.Builder
	prettyPrintNode(&sb, n, 0)
	return sb.String()
}

func prettyPrintNode(sb *strings.Builder, n Node, indent int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.String())
	sb.WriteString("\n")

	switch node := n.(type) {
	case *Program:
		prettyPrintNode(sb, node.Root, indent+1)
	case *Block:
		for _, stmt := range node.Stmts {
			prettyPrintNode(sb, stmt, indent+1)
		}
	case *IntDcl:
		prettyPrintNode(sb, node.Init, indent+1)
	case *FloatDcl:
		prettyPrintNode(sb, node.Init, indent+1)
	case *StringDcl:
		prettyPrintNode(sb, node.Init, indent+1)
	case *BoolDcl:
		prettyPrintNode(sb, node.Init, indent+1)
	case *Reassign:
		prettyPrintNode(sb, node.Value, indent+1)
	case *Print:
		prettyPrintNode(sb, node.Value, indent+1)
	case *IfStatement:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Then, indent+1)
		for _, e := range node.Elifs {
			prettyPrintNode(sb, e, indent+1)
		}
		prettyPrintNode(sb, node.Else, indent+1)
	case *Elif:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Then, indent+1)
	case *WhileStatement:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Body, indent+1)
	case *ForStatement:
		prettyPrintNode(sb, node.Init, indent+1)
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Update, indent+1)
		prettyPrintNode(sb, node.Body, indent+1)
	case *UMinus:
		prettyPrintNode(sb, node.Operand, indent+1)
	case *IntToFloat:
		prettyPrintNode(sb, node.Operand, indent+1)
	case *Sum:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *Sub:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *Mul:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *Div:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *Exp:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpEq:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpNe:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpGe:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpLe:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpGt:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *CmpLt:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *AndOp:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *OrOp:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
		// IntLit, FloatLit, StringLit, BoolLit, VarRef are leaves.
	}
}
