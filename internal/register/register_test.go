package register

import (
	"testing"

	"github.com/atotto/clipboard"
)

func TestAllocReturnsDistinctHandles(t *testing.T) {
	s := NewStore()
	a := s.Alloc()
	b := s.Alloc()
	if a == b {
		t.Fatalf("Alloc returned the same handle twice: %v", a)
	}
	if a == 0 || b == 0 {
		t.Fatalf("the zero Handle must never be allocated, got %v and %v", a, b)
	}
}

func TestSetGetRoundTripsInMemory(t *testing.T) {
	s := NewStore()
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain", "yanked text"},
		{"multiline", "one\ntwo\n"},
		{"unicode", "中文 and ascii"},
	}
	for _, c := range cases {
		h := s.Alloc()
		s.Set(h, c.text)
		if got := s.Get(h); got != c.text {
			t.Errorf("%s: Get = %q, want %q", c.name, got, c.text)
		}
	}
}

func TestNamedReturnsStableHandle(t *testing.T) {
	s := NewStore()
	first := s.Named('a')
	second := s.Named('a')
	if first != second {
		t.Fatalf("Named('a') = %v then %v, want the same handle", first, second)
	}
	if s.Named('b') == first {
		t.Fatalf("distinct register names must map to distinct handles")
	}
}

func TestNamedRegisterSharesText(t *testing.T) {
	s := NewStore()
	s.Set(s.Named('a'), "shared")
	if got := s.Get(s.Named('a')); got != "shared" {
		t.Fatalf("Get via second Named lookup = %q, want %q", got, "shared")
	}
}

func TestClipboardRouting(t *testing.T) {
	s := NewStore()
	cases := []struct {
		name   rune
		backed bool
	}{
		{'+', true},
		{'*', true},
		{'a', false},
		{'z', false},
	}
	for _, c := range cases {
		h := s.Named(c.name)
		if _, got := s.isClipboardBacked(h); got != c.backed {
			t.Errorf("isClipboardBacked(Named(%q)) = %v, want %v", c.name, got, c.backed)
		}
	}
	if _, got := s.isClipboardBacked(s.Alloc()); got {
		t.Errorf("a private register must never be clipboard-backed")
	}
}

func TestClipboardBackedRoundTrip(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this platform")
	}
	s := NewStore()
	h := s.Named('+')
	s.Set(h, "from the plus register")
	if _, err := clipboard.ReadAll(); err != nil {
		t.Skipf("clipboard unavailable: %v", err)
	}
	if got := s.Get(h); got != "from the plus register" {
		t.Fatalf("Get('+') = %q, want the text written through Set", got)
	}
}

func TestReleaseDropsText(t *testing.T) {
	s := NewStore()
	h := s.Alloc()
	s.Set(h, "gone soon")
	s.Release(h)
	if got := s.Get(h); got != "" {
		t.Fatalf("Get after Release = %q, want empty", got)
	}
}
