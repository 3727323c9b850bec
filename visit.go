package ebnfkit

import "errors"

type visitorFunc func(e Expr, next func() error) error

// Walk the expression graph reachable from e, visiting each expression once.
func visit(e Expr, visitor visitorFunc) error {
	return _visit(map[Expr]bool{}, e, visitor)
}

func _visit(seen map[Expr]bool, e Expr, visitor visitorFunc) error {
	if seen[e] {
		return nil
	}
	seen[e] = true
	return visitor(e, func() error {
		switch e := e.(type) {
		case *Rule:
			if e.expr == nil {
				return nil
			}
			return _visit(seen, e.expr, visitor)

		case *sequence:
			return visitAll(seen, e.exprs, visitor)

		case *choice:
			return visitAll(seen, e.exprs, visitor)

		case *repetition:
			return _visit(seen, e.expr, visitor)

		case *optional:
			return _visit(seen, e.expr, visitor)

		case *exclusion:
			if err := _visit(seen, e.expr, visitor); err != nil {
				return err
			}
			return visitAll(seen, e.except, visitor)

		case *literal, *class, nil:

		default:
			panic("unsupported")
		}
		return nil
	})
}

func visitAll(seen map[Expr]bool, exprs []Expr, visitor visitorFunc) error {
	for _, e := range exprs {
		if err := _visit(seen, e, visitor); err != nil {
			return err
		}
	}
	return nil
}

// Check that every expression reachable from start is usable.
func validate(start Expr) error {
	return visit(start, func(e Expr, next func() error) error {
		switch e := e.(type) {
		case nil:
			return errors.New("nil expression in grammar")
		case *Rule:
			if e.expr == nil {
				return errors.New("rule " + e.name + " is declared but never defined")
			}
		}
		return next()
	})
}

// Visitor is called for each node in a parse tree. Calling next visits the node's children.
type Visitor func(node *Node, next func() error) error

// Visit the parse tree rooted at node depth first.
//
// Visit recurses once per level of the tree, as next runs inside the visitor.
func Visit(node *Node, visitor Visitor) error {
	return visitor(node, func() error {
		for _, child := range node.Children {
			if err := Visit(child, visitor); err != nil {
				return err
			}
		}
		return nil
	})
}
