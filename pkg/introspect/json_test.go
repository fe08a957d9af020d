package introspect_test

import (
	"encoding/json"
	"testing"

	"github.com/mythonlang/mython/pkg/core/value"
	"github.com/mythonlang/mython/pkg/introspect"
)

func TestScopeToJSONRendersScalars(t *testing.T) {
	scope := value.NewScope()
	scope.Set("x", value.Num(5))
	scope.Set("name", value.Str("mython"))
	scope.Set("flag", value.Bool(true))
	scope.Set("nothing", value.None)

	out, err := introspect.ScopeToJSON(scope.Names(), scope.Get)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["x"].(float64) != 5 {
		t.Errorf("expected x=5, got %v", decoded["x"])
	}
	if decoded["name"] != "mython" {
		t.Errorf("expected name=mython, got %v", decoded["name"])
	}
	if decoded["flag"] != true {
		t.Errorf("expected flag=true, got %v", decoded["flag"])
	}
	if decoded["nothing"] != nil {
		t.Errorf("expected nothing=nil, got %v", decoded["nothing"])
	}
}

func TestScopeToJSONRendersInstanceFields(t *testing.T) {
	class := value.NewClass("Point", nil, nil)
	inst := value.NewInstance(class)
	inst.Fields.Set("x", value.Num(3))
	inst.Fields.Set("y", value.Num(4))

	scope := value.NewScope()
	scope.Set("p", value.ClassInstance(inst))

	out, err := introspect.ScopeToJSON(scope.Names(), scope.Get)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["p"]["__instance_of__"] != "Point" {
		t.Errorf("expected __instance_of__=Point, got %v", decoded["p"]["__instance_of__"])
	}
}

func TestScopeToJSONBreaksInstanceCycles(t *testing.T) {
	class := value.NewClass("Node", nil, nil)
	a := value.NewInstance(class)
	b := value.NewInstance(class)
	a.Fields.Set("next", value.ClassInstance(b))
	b.Fields.Set("next", value.ClassInstance(a))

	scope := value.NewScope()
	scope.Set("a", value.ClassInstance(a))
	scope.Set("b", value.ClassInstance(b))

	out, err := introspect.ScopeToJSON(scope.Names(), scope.Get)
	if err != nil {
		t.Fatalf("expected cycle-breaking rendering to terminate without error, got: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty JSON output")
	}
}
