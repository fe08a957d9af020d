// Package introspect renders the runtime value model to JSON for the CLI's
// -json diagnostic flag. This is a pure addition to the ambient stack: the
// core language has no JSON surface of its own (spec.md explicitly scopes
// the standard library to print only), but embedding hosts benefit from
// being able to inspect the top-level scope after a run. Adapted from the
// teacher's JSON-bridging stdlib word, generalized from "parse JSON into a
// value" to "render a value tree as JSON".
package introspect

import (
	"encoding/json"

	"github.com/mythonlang/mython/pkg/core/value"
)

// ScopeToJSON renders every top-level binding in scope as a JSON object,
// recursively expanding ClassInstance fields. Cycles introduced through
// instance-to-instance field assignment are broken by rendering repeat
// instances as an opaque reference marker rather than expanding them
// again, since the value model itself permits such cycles (spec.md's
// accepted leak limitation) but a renderer must still terminate.
func ScopeToJSON(names []string, lookup func(string) (value.Value, bool)) ([]byte, error) {
	out := make(map[string]any, len(names))
	seen := make(map[*value.Instance]bool)
	for _, name := range names {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		out[name] = render(v, seen)
	}
	return json.MarshalIndent(out, "", "  ")
}

func render(v value.Value, seen map[*value.Instance]bool) any {
	switch v.Type {
	case value.TypeNone:
		return nil
	case value.TypeNumber:
		return v.Number
	case value.TypeString:
		return v.Str
	case value.TypeBool:
		return v.Bool
	case value.TypeClassObject:
		return map[string]any{"__class__": v.Class.Name}
	case value.TypeClassInstance:
		return renderInstance(v.Instance, seen)
	default:
		return nil
	}
}

func renderInstance(inst *value.Instance, seen map[*value.Instance]bool) any {
	if seen[inst] {
		return map[string]any{"__ref__": inst.Class.Name}
	}
	seen[inst] = true
	fields := map[string]any{}
	for _, name := range inst.Fields.Names() {
		v, _ := inst.Fields.Get(name)
		fields[name] = render(v, seen)
	}
	return map[string]any{
		"__instance_of__": inst.Class.Name,
		"fields":          fields,
	}
}
