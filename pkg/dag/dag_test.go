package dag

import (
	"errors"
	"testing"
)

// stub is a minimal Node for exercising traversals.
type stub struct {
	id    int64
	kind  Kind
	lit   int
	elems []Element
}

func (s *stub) ID() int64           { return s.id }
func (s *stub) Kind() Kind          { return s.kind }
func (s *stub) Literal() int        { return s.lit }
func (s *stub) Vtree() Vtree        { return nil }
func (s *stub) Elements() []Element { return s.elems }

func TestKind(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		leaf  bool
		valid bool
	}{
		{KindFalse, "false", true, true},
		{KindTrue, "true", true, true},
		{KindLiteral, "literal", true, true},
		{KindDecision, "decision", false, true},
		{Kind(7), "kind(7)", false, false},
		{Kind(-1), "kind(-1)", false, false},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.name)
		}
		if got := tt.kind.IsLeaf(); got != tt.leaf {
			t.Errorf("Kind(%d).IsLeaf() = %v, want %v", int(tt.kind), got, tt.leaf)
		}
		if got := tt.kind.Valid(); got != tt.valid {
			t.Errorf("Kind(%d).Valid() = %v, want %v", int(tt.kind), got, tt.valid)
		}
	}
}

func TestStatsSharedNodes(t *testing.T) {
	top := &stub{id: 1, kind: KindTrue}
	x := &stub{id: 2, kind: KindLiteral, lit: 3}
	inner := &stub{id: 3, kind: KindDecision, elems: []Element{{x, top}}}
	root := &stub{id: 0, kind: KindDecision, elems: []Element{{x, inner}, {inner, top}}}

	nodes, elements, err := Stats(root)
	if err != nil {
		t.Fatal(err)
	}
	if nodes != 4 || elements != 3 {
		t.Errorf("Stats() = %d nodes, %d elements; want 4, 3", nodes, elements)
	}
	if vars := Variables(root); len(vars) != 1 || vars[0] != 3 {
		t.Errorf("Variables() = %v, want [3]", vars)
	}
}

func TestStatsErrors(t *testing.T) {
	if _, _, err := Stats(nil); !errors.Is(err, ErrNilRoot) {
		t.Errorf("Stats(nil) error = %v, want ErrNilRoot", err)
	}

	bad := &stub{id: 9, kind: Kind(42)}
	root := &stub{id: 0, kind: KindDecision, elems: []Element{{bad, bad}}}
	if _, _, err := Stats(root); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Stats() error = %v, want ErrUnknownKind", err)
	}
	if Variables(nil) != nil {
		t.Error("Variables(nil) should be nil")
	}
}
