package strkernel

import "testing"

func TestCommonPrefixLen(t *testing.T) {
	cases := []struct {
		x, y string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abd", 2},
		{"happy", "happiness", 4},
		{"same", "same", 4},
	}
	for _, c := range cases {
		if got := CommonPrefixLen(c.x, c.y); got != c.want {
			t.Errorf("CommonPrefixLen(%q, %q) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestMatchRouteLiteral(t *testing.T) {
	p, q, bindings := MatchRoute("/home", "/home")
	if p != 5 || q != 5 || len(bindings) != 0 {
		t.Fatalf("unexpected match result: p=%d q=%d bindings=%v", p, q, bindings)
	}
}

func TestMatchRoutePlaceholder(t *testing.T) {
	p, q, bindings := MatchRoute("/user/<id>", "/user/foo")
	if p != len("/user/<id>") || q != len("/user/foo") {
		t.Fatalf("expected full consumption, got p=%d q=%d", p, q)
	}
	if len(bindings) != 1 || bindings[0] != (Binding{Name: "id", Value: "foo"}) {
		t.Fatalf("unexpected bindings: %v", bindings)
	}
}

func TestMatchRoutePlaceholderStopsAtSlash(t *testing.T) {
	_, q, bindings := MatchRoute("/user/<id>", "/user/foo/books")
	if q != len("/user/foo") {
		t.Fatalf("placeholder should stop at '/', consumed %d", q)
	}
	if bindings[0].Value != "foo" {
		t.Fatalf("unexpected binding value %q", bindings[0].Value)
	}
}

func TestMatchRouteMultiplePlaceholders(t *testing.T) {
	p, q, bindings := MatchRoute("/user/<id>/books/<book_id>", "/user/foo/books/bar")
	if p != len("/user/<id>/books/<book_id>") || q != len("/user/foo/books/bar") {
		t.Fatalf("expected full match, p=%d q=%d", p, q)
	}
	want := []Binding{{Name: "id", Value: "foo"}, {Name: "book_id", Value: "bar"}}
	if len(bindings) != len(want) || bindings[0] != want[0] || bindings[1] != want[1] {
		t.Fatalf("unexpected bindings: %v", bindings)
	}
}

func TestMatchRouteMismatch(t *testing.T) {
	p, q, _ := MatchRoute("/home", "/hello")
	if p != 2 || q != 2 {
		t.Fatalf("expected mismatch after shared prefix '/h', got p=%d q=%d", p, q)
	}
}

func TestBalancedBrackets(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"/user/<id>", true},
		{"/user/<id", false},
		{"/user/id>", false},
		{"", true},
		{"/a/{b}/[c]/<d>", true},
		{"/a/{b]", false},
	}
	for _, c := range cases {
		if got := BalancedBrackets(c.s); got != c.want {
			t.Errorf("BalancedBrackets(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}

func TestSplitSegments(t *testing.T) {
	got := SplitSegments("/user/foo/books/bar")
	want := []string{"user", "foo", "books", "bar"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
