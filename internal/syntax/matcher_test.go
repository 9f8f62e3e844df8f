package syntax

import "testing"

func TestMatcherFirstRuleWinsByDeclarationOrder(t *testing.T) {
	def := &Definition{
		Styles: []StyleSpec{{}, {Name: "a"}, {Name: "b"}},
		Rules: []Rule{
			MustCompileRule("a", `foo`, 1),
			MustCompileRule("b", `\w+`, 2),
		},
	}
	m := NewMatcher(def, "foo bar")

	slot, ok := m.StyleSlotAt(0)
	if !ok || slot != 1 {
		t.Fatalf("StyleSlotAt(0) = (%v,%v), want (1,true)", slot, ok)
	}
	slot, ok = m.StyleSlotAt(2)
	if !ok || slot != 1 {
		t.Fatalf("StyleSlotAt(2) = (%v,%v), want (1,true) (still inside 'foo')", slot, ok)
	}
	slot, ok = m.StyleSlotAt(4)
	if !ok || slot != 2 {
		t.Fatalf("StyleSlotAt(4) = (%v,%v), want (2,true) ('bar' matched by rule b)", slot, ok)
	}
}

func TestMatcherDiscardsZeroLengthMatches(t *testing.T) {
	def := &Definition{
		Styles: []StyleSpec{{}, {Name: "empty"}},
		Rules: []Rule{
			MustCompileRule("empty", `x*`, 1),
		},
	}
	m := NewMatcher(def, "   ")
	// "x*" matches zero-length everywhere in "   "; it must never pin the
	// scanner or report a style.
	for pos := 0; pos < len("   "); pos++ {
		if _, ok := m.StyleSlotAt(pos); ok {
			t.Fatalf("StyleSlotAt(%d) matched on a zero-length result", pos)
		}
	}
}

func TestMatcherNoRulesMatch(t *testing.T) {
	def := &Definition{Styles: []StyleSpec{{}}}
	m := NewMatcher(def, "anything")
	if _, ok := m.StyleSlotAt(0); ok {
		t.Fatalf("expected no match with zero rules")
	}
}
