package ipld

import (
	"errors"
	"testing"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", NewPath(), ""},
		{"single key", NewPath(KeySegment("a")), "a"},
		{"nested keys", NewPath(KeySegment("a"), KeySegment("b")), "a.b"},
		{"index", NewPath(IndexSegment(3)), "[3]"},
		{"mixed", NewPath(KeySegment("a"), IndexSegment(0), KeySegment("b")), "a[0].b"},
		{"index then key", NewPath(IndexSegment(1), KeySegment("x")), "[1].x"},
		{"quoted key", NewPath(KeySegment("with space")), `"with space"`},
		{"dotted key", NewPath(KeySegment("a.b")), `"a.b"`},
		{"empty key", NewPath(KeySegment("")), `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePath(t *testing.T) {
	roundTrips := []string{
		"",
		"a",
		"a.b",
		"[3]",
		"a[0].b",
		"[1].x",
		`"with space"`,
		`a."b.c"[2]`,
	}
	for _, s := range roundTrips {
		p, err := ParsePath(s)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", s, err)
		}
		if got := p.String(); got != s {
			t.Errorf("ParsePath(%q).String() = %q", s, got)
		}
	}

	bad := []string{
		".",
		".a",
		"a.",
		"a..b",
		"[",
		"[x]",
		"[-1]",
		`"unterminated`,
	}
	for _, s := range bad {
		if _, err := ParsePath(s); !errors.Is(err, ErrPathSyntax) {
			t.Errorf("ParsePath(%q) err = %v, want ErrPathSyntax", s, err)
		}
	}
}

func TestPathResolve(t *testing.T) {
	tree := FromMap(map[string]*Node{
		"a": FromMap(map[string]*Node{
			"b": FromList([]*Node{
				FromInt(10),
				FromString("x"),
			}),
		}),
		"c": FromInt(3),
	})

	got, err := NewPath(KeySegment("a"), KeySegment("b"), IndexSegment(1)).Resolve(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != StringKind || got.String != "x" {
		t.Errorf("Resolve = %v", got)
	}

	if _, err := NewPath(KeySegment("missing")).Resolve(tree); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key err = %v, want ErrNotFound", err)
	}
	if _, err := NewPath(KeySegment("a"), KeySegment("b"), IndexSegment(5)).Resolve(tree); !errors.Is(err, ErrNotFound) {
		t.Errorf("out of range err = %v, want ErrNotFound", err)
	}
	if _, err := NewPath(KeySegment("c"), KeySegment("x")).Resolve(tree); !errors.Is(err, ErrWrongKind) {
		t.Errorf("key into int err = %v, want ErrWrongKind", err)
	}
	if _, err := NewPath(IndexSegment(0)).Resolve(tree); !errors.Is(err, ErrWrongKind) {
		t.Errorf("index into map err = %v, want ErrWrongKind", err)
	}
}

func TestPathChild(t *testing.T) {
	root := NewPath(KeySegment("a"))
	child := root.Child(IndexSegment(2))
	if root.String() != "a" {
		t.Errorf("parent mutated: %q", root.String())
	}
	if child.String() != "a[2]" {
		t.Errorf("child = %q, want a[2]", child.String())
	}
}
