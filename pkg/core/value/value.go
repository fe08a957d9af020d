// Package value is the runtime object model: the closed Value sum type,
// the Scope name→Value mapping, and the Class/Method/Instance metaobjects
// that back class instances. They are co-located because Value wraps
// *Class and *Instance directly and Instance's field table is itself a
// Scope — splitting them across packages would only buy import cycles.
package value

import "fmt"

// Type is the tag of the Value sum.
type Type uint8

const (
	TypeNone Type = iota
	TypeNumber
	TypeString
	TypeBool
	TypeClassObject
	TypeClassInstance
)

// Value is a tagged union over the runtime value universe. Every Value is
// either None or carries a payload; ClassInstance and ClassObject carry a
// shared pointer, so multiple holders observe the same mutations to an
// instance's fields.
type Value struct {
	Type     Type
	Number   int32
	Str      string
	Bool     bool
	Class    *Class
	Instance *Instance
}

// None is the absent value.
var None = Value{Type: TypeNone}

// Num constructs a Number value.
func Num(n int32) Value { return Value{Type: TypeNumber, Number: n} }

// Str constructs a String value.
func Str(s string) Value { return Value{Type: TypeString, Str: s} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{Type: TypeBool, Bool: b} }

// ClassObject constructs a Value holding a reference to a Class.
func ClassObject(c *Class) Value { return Value{Type: TypeClassObject, Class: c} }

// ClassInstance constructs a Value holding a reference to an Instance.
func ClassInstance(i *Instance) Value { return Value{Type: TypeClassInstance, Instance: i} }

func (v Value) String() string {
	switch v.Type {
	case TypeNone:
		return "None"
	case TypeNumber:
		return fmt.Sprintf("%d", v.Number)
	case TypeString:
		return v.Str
	case TypeBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case TypeClassObject:
		return "Class " + v.Class.Name
	case TypeClassInstance:
		return fmt.Sprintf("<%s object at %p>", v.Instance.Class.Name, v.Instance)
	default:
		return "<unknown value>"
	}
}

// IsTrue is the total truthiness predicate: None is false, Bool is its own
// value, Number is nonzero, String is non-empty, and any class-valued
// entity is false.
func IsTrue(v Value) bool {
	switch v.Type {
	case TypeNone:
		return false
	case TypeBool:
		return v.Bool
	case TypeNumber:
		return v.Number != 0
	case TypeString:
		return v.Str != ""
	default:
		return false
	}
}
