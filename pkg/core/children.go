package core

import "fmt"

// updateChildren reconciles an ordered child list against a new description
// list. Keyed children are matched by key wherever they moved; unkeyed
// children are matched by position index among the remaining unkeyed slots.
// Old children that match nothing are unmounted recursively after the pass,
// so a shrinking list destroys exactly the removed subtrees.
//
// Duplicate keys among the new siblings are a build-time fault attributed
// to the parent: the previous child list is left in place (last-good) and
// the fault goes to the error handler.
func updateChildren(parent Element, oldChildren []Element, newWidgets []Widget, owner *BuildOwner) []Element {
	if fault := duplicateKey(newWidgets); fault != nil {
		if reporter, ok := parent.(interface{ reportChildFault(error) }); ok {
			reporter.reportChildFault(fault)
		}
		return oldChildren
	}

	oldKeyed := make(map[any]Element)
	var oldUnkeyed []Element
	for _, child := range oldChildren {
		if key := widgetKey(child.Widget()); key != nil {
			oldKeyed[key] = child
		} else {
			oldUnkeyed = append(oldUnkeyed, child)
		}
	}

	newChildren := make([]Element, 0, len(newWidgets))
	consumed := make(map[Element]bool, len(oldChildren))
	unkeyedIndex := 0
	var previous Element

	for index, widget := range newWidgets {
		if widget == nil {
			continue
		}
		var existing Element
		if key := widgetKey(widget); key != nil {
			existing = oldKeyed[key]
		} else if unkeyedIndex < len(oldUnkeyed) {
			existing = oldUnkeyed[unkeyedIndex]
			unkeyedIndex++
		}
		if existing != nil {
			consumed[existing] = true
		}

		slot := IndexedSlot{Index: index, PreviousSibling: previous}
		child := updateChild(existing, widget, parent, owner, slot)
		if child != nil {
			newChildren = append(newChildren, child)
			previous = child
		}
	}

	// Deep removal of everything the new list no longer describes.
	// updateChild already unmounted shape-mismatched elements it consumed.
	for _, child := range oldChildren {
		if !consumed[child] {
			child.Unmount()
		}
	}

	return newChildren
}

// duplicateKey returns an error naming the first key that appears on more
// than one sibling, or nil when the list is well formed.
func duplicateKey(widgets []Widget) error {
	var seen map[any]bool
	for _, w := range widgets {
		if w == nil {
			continue
		}
		key := widgetKey(w)
		if key == nil {
			continue
		}
		if seen == nil {
			seen = make(map[any]bool)
		}
		if seen[key] {
			return fmt.Errorf("duplicate key %v among sibling widgets", key)
		}
		seen[key] = true
	}
	return nil
}
