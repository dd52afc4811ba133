package ast

import "encoding/json"

// Encode converts the subtree at id back into its Babel document form.
// Absent optional children are omitted. Flags of the node's shape are always
// present so the output is stable for hashing.
//
// Values are limited to string, bool, json.Number, []any and map[string]any.
func Encode(t *Tree, id NodeID) map[string]any {
	n := t.Node(id)
	sh := shapes[n.Kind]
	out := map[string]any{"type": n.Kind.String()}

	for _, f := range sh.fields {
		var v any
		switch f.slot {
		case slotA:
			v = encodeChild(t, n.A)
		case slotB:
			v = encodeChild(t, n.B)
		case slotC:
			v = encodeChild(t, n.C)
		case slotD:
			v = encodeChild(t, n.D)
		case slotParams:
			v = encodeList(t, n.Params)
		case slotList:
			v = encodeList(t, n.List)
		case slotName:
			switch f.scalar {
			case scalarNumber:
				v = json.Number(n.Name)
			case scalarBool:
				v = n.Name == "true"
			case scalarRaw:
				v = map[string]any{"raw": n.Name}
			default:
				v = n.Name
			}
		}
		if v == nil {
			continue
		}
		if f.wrapper != "" {
			v = map[string]any{"type": f.wrapper, "body": v}
		}
		out[f.key] = v
	}
	for _, ff := range sh.flags {
		out[ff.key] = n.Flags.Has(ff.flag)
	}
	if n.Flags.Has(FlagPure) {
		out["leadingComments"] = []any{
			map[string]any{"type": "CommentBlock", "value": PureAnnotation},
		}
	}
	return out
}

func encodeChild(t *Tree, id NodeID) any {
	if id == NoNode {
		return nil
	}
	return Encode(t, id)
}

func encodeList(t *Tree, ids []NodeID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = Encode(t, id)
	}
	return out
}
