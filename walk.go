package docpress

// Action controls traversal from a visitor callback.
type Action int

const (
	// ActionContinue visits the node's children, then departs.
	ActionContinue Action = iota
	// ActionSkipChildren departs the node without visiting its children.
	ActionSkipChildren
	// ActionSkipSiblings departs the node without visiting its children and
	// skips the remaining siblings at the current level. The signal is scoped
	// to the current recursion frame: the parent's departure and the levels
	// above it proceed normally.
	ActionSkipSiblings
	// ActionStop aborts the whole traversal.
	ActionStop
)

// TreeVisitor receives nodes during a depth-first pre-order traversal.
// Visit runs before a node's children, Depart after them.
type TreeVisitor interface {
	Visit(id NodeID) (Action, error)
	Depart(id NodeID) error
}

// VisitFunc adapts a plain function to a TreeVisitor with no departure hook.
type VisitFunc func(id NodeID) (Action, error)

func (f VisitFunc) Visit(id NodeID) (Action, error) { return f(id) }
func (f VisitFunc) Depart(id NodeID) error          { return nil }

// Traverse walks the subtree rooted at root depth-first, pre-order.
// Errors from the visitor propagate and abort the traversal; drivers that
// want recovery wrap their visitor (see DocumentWriter).
func (d *Document) Traverse(root NodeID, v TreeVisitor) error {
	if !d.Valid(root) {
		return ErrInvalidNode
	}
	_, err := d.traverse(root, v)
	return err
}

// Walk is Traverse with a bare visit function.
func (d *Document) Walk(root NodeID, visit VisitFunc) error {
	return d.Traverse(root, visit)
}

func (d *Document) traverse(id NodeID, v TreeVisitor) (Action, error) {
	act, err := v.Visit(id)
	if err != nil {
		return ActionStop, err
	}
	if act == ActionStop {
		return ActionStop, nil
	}
	if act == ActionContinue {
		for _, c := range d.nodes[id].children {
			childAct, err := d.traverse(c, v)
			if err != nil {
				return ActionStop, err
			}
			if childAct == ActionStop {
				return ActionStop, nil
			}
			if childAct == ActionSkipSiblings {
				break
			}
		}
	}
	if err := v.Depart(id); err != nil {
		return ActionStop, err
	}
	return act, nil
}
