package docpress

import "sync/atomic"

// transformOrder is the process-wide creation counter. Uniqueness, not
// magnitude, is the invariant: it is never reset, and it only breaks
// priority ties so same-priority transforms run in scheduling order.
var transformOrder atomic.Uint64

// CallablePriority is the fixed priority of plain-function transforms.
// Callables run after explicitly prioritized transforms of lower priority
// and, among themselves, preserve their list order.
const CallablePriority = 950

// Transformer rewrites the subtree of a document it is targeted at.
// Priorities run ascending; ties break by creation order.
type Transformer interface {
	Priority() int
	Order() uint64
	Apply(run *Run) error
}

// Base carries the priority and creation order every transform needs.
// Embed it and construct with NewBase.
type Base struct {
	priority int
	order    uint64
}

// NewBase stamps a transform with its priority and the next creation-order
// number.
func NewBase(priority int) Base {
	return Base{priority: priority, order: transformOrder.Add(1)}
}

func (b Base) Priority() int { return b.priority }
func (b Base) Order() uint64 { return b.order }

// TransformSpec names one transform for a scheduler run: an existing
// instance, a constructor to instantiate against the document root, or a
// plain function wrapped at CallablePriority.
type TransformSpec struct {
	Instance    Transformer
	Constructor func() Transformer
	Func        func(run *Run) error
	// Target overrides the subtree root the transform rewrites.
	// NoNode means the document root.
	Target NodeID
}

// Instance wraps an already-constructed transform.
func Instance(t Transformer) TransformSpec { return TransformSpec{Instance: t} }

// Constructor wraps a transform constructor, instantiated at run time.
func Constructor(fn func() Transformer) TransformSpec { return TransformSpec{Constructor: fn} }

// Callable wraps a plain function as an ad-hoc transform.
func Callable(fn func(run *Run) error) TransformSpec { return TransformSpec{Func: fn} }

// funcTransform adapts a plain function. All callables share order 0, so
// among themselves they keep the order they were scheduled in.
type funcTransform struct {
	fn func(run *Run) error
}

func (funcTransform) Priority() int { return CallablePriority }
func (funcTransform) Order() uint64 { return 0 }

func (t funcTransform) Apply(run *Run) error { return t.fn(run) }
