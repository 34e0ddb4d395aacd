package widgets

import "github.com/loom-ui/loom/pkg/core"

// Builder defers widget construction to a closure. Useful for obtaining a
// BuildContext below an inherited publication without declaring a new type.
type Builder struct {
	core.StatelessBase
	BuildFn func(ctx core.BuildContext) core.Widget
}

func (b Builder) Build(ctx core.BuildContext) core.Widget {
	if b.BuildFn == nil {
		return nil
	}
	return b.BuildFn(ctx)
}

// KeyedSubtree gives its child subtree an explicit local key so it keeps
// its element (and all state inside) when siblings of the same kind are
// reordered, inserted, or removed around it.
type KeyedSubtree struct {
	KeyValue any
	Child    core.Widget
}

func (k KeyedSubtree) CreateElement() core.Element {
	return core.NewStatelessElement(k, nil)
}

func (k KeyedSubtree) Key() any {
	return k.KeyValue
}

func (k KeyedSubtree) Build(ctx core.BuildContext) core.Widget {
	return k.Child
}
