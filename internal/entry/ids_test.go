package entry

import "testing"

func TestIDAllocatorClaim(t *testing.T) {
	a := IDAllocator{}
	seq := []struct{ in, want string }{
		{"smith2024", "smith2024"},
		{"smith2024", "smith2024a"},
		{"smith2024", "smith2024b"},
		{"smith2024b", "smith2024ba"},
		{"other", "other"},
	}
	for _, s := range seq {
		if got := a.Claim(s.in); got != s.want {
			t.Errorf("Claim(%q) = %q, want %q", s.in, got, s.want)
		}
	}
}

func TestIDAllocatorSuffixRollsOver(t *testing.T) {
	a := IDAllocator{}
	a.Claim("x")
	var last string
	for i := 0; i < 27; i++ {
		last = a.Claim("x")
	}
	if last != "xaa" {
		t.Errorf("27th duplicate = %q, want xaa", last)
	}
}
