package value

// Print renders v the way the language surface does: Number as decimal
// digits, Bool as True/False, String verbatim, None as the literal None,
// ClassObject as "Class <name>", and ClassInstance via its __str__ dunder
// when resolvable, falling back to an implementation-defined identifier.
func Print(v Value, out Writer, ctx Context) (string, error) {
	if v.Type == TypeClassInstance {
		if v.Instance.HasMethod("__str__", 0) {
			result, err := v.Instance.Call("__str__", nil, ctx)
			if err != nil {
				return "", err
			}
			return Print(result, out, ctx)
		}
	}
	return v.String(), nil
}

// Equal implements the equal() comparison: both None compare equal; equal
// scalars of the same variant compare by payload; a left-hand ClassInstance
// dispatches to __eq__/1; any other combination fails.
func Equal(l, r Value, ctx Context) (bool, error) {
	if l.Type == TypeNone && r.Type == TypeNone {
		return true, nil
	}
	if l.Type == TypeClassInstance {
		if !l.Instance.HasMethod("__eq__", 1) {
			return false, newRuntimeError("cannot compare: class '%s' has no __eq__", l.Instance.Class.Name)
		}
		result, err := l.Instance.Call("__eq__", []Value{r}, ctx)
		if err != nil {
			return false, err
		}
		if result.Type != TypeBool {
			return false, newRuntimeError("__eq__ must return a bool")
		}
		return result.Bool, nil
	}
	if l.Type != r.Type {
		return false, newRuntimeError("cannot compare: %s and %s", typeName(l.Type), typeName(r.Type))
	}
	switch l.Type {
	case TypeBool:
		return l.Bool == r.Bool, nil
	case TypeNumber:
		return l.Number == r.Number, nil
	case TypeString:
		return l.Str == r.Str, nil
	default:
		return false, newRuntimeError("cannot compare: %s and %s", typeName(l.Type), typeName(r.Type))
	}
}

// Less implements the less() comparison: natural order on Number and Bool
// (false < true), lexicographic on String, __lt__/1 dispatch on a
// left-hand ClassInstance.
func Less(l, r Value, ctx Context) (bool, error) {
	if l.Type == TypeClassInstance {
		if !l.Instance.HasMethod("__lt__", 1) {
			return false, newRuntimeError("cannot compare: class '%s' has no __lt__", l.Instance.Class.Name)
		}
		result, err := l.Instance.Call("__lt__", []Value{r}, ctx)
		if err != nil {
			return false, err
		}
		if result.Type != TypeBool {
			return false, newRuntimeError("__lt__ must return a bool")
		}
		return result.Bool, nil
	}
	if l.Type != r.Type {
		return false, newRuntimeError("cannot compare: %s and %s", typeName(l.Type), typeName(r.Type))
	}
	switch l.Type {
	case TypeBool:
		return !l.Bool && r.Bool, nil
	case TypeNumber:
		return l.Number < r.Number, nil
	case TypeString:
		return l.Str < r.Str, nil
	default:
		return false, newRuntimeError("cannot compare: %s and %s", typeName(l.Type), typeName(r.Type))
	}
}

// NotEqual is !equal.
func NotEqual(l, r Value, ctx Context) (bool, error) {
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater is !less && !equal.
func Greater(l, r Value, ctx Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

// LessOrEqual is less || equal.
func LessOrEqual(l, r Value, ctx Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return Equal(l, r, ctx)
}

// GreaterOrEqual is !less.
func GreaterOrEqual(l, r Value, ctx Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

func typeName(t Type) string {
	switch t {
	case TypeNone:
		return "None"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeBool:
		return "Bool"
	case TypeClassObject:
		return "ClassObject"
	case TypeClassInstance:
		return "ClassInstance"
	default:
		return "Unknown"
	}
}
