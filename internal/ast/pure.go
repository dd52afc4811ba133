package ast

// PureAnnotation is the comment text downstream minifiers recognize.
const PureAnnotation = "#__PURE__"

// AnnotateAsPure marks the call or new expression id as free of observable
// side effects, so dead-code elimination may drop it when its result is
// unused. Returns false for any other kind. Annotating twice is a no-op.
func AnnotateAsPure(t *Tree, id NodeID) bool {
	n := t.Node(id)
	if n == nil || (n.Kind != KindCallExpression && n.Kind != KindNewExpression) {
		return false
	}
	n.Flags |= FlagPure
	return true
}

// IsPureAnnotated reports whether id carries the pure annotation.
func IsPureAnnotated(t *Tree, id NodeID) bool {
	n := t.Node(id)
	return n != nil && n.Flags.Has(FlagPure)
}
