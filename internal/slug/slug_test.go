package slug

import (
	"context"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Managing Type 2 Diabetes  ", "managing-type-2-diabetes"},
		{"What's New in Cardiology?", "whats-new-in-cardiology"},
		{"spaced   out    words", "spaced-out-words"},
		{"already-a-slug", "already-a-slug"},
		{"Mixed --- hyphens - and   spaces", "mixed-hyphens-and-spaces"},
		{"UPPERCASE", "uppercase"},
		{"fièvre élevée 101", "fivre-leve-101"},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.input)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalize_OnlyValidChars(t *testing.T) {
	inputs := []string{"Hello, World!", "a_b_c", "100% effort", "tabs\tand\nnewlines"}

	for _, input := range inputs {
		got, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !valid {
				t.Errorf("Normalize(%q) = %q contains invalid rune %q", input, got, r)
			}
		}
	}
}

func TestNormalize_SymbolsOnly(t *testing.T) {
	inputs := []string{"!!!", "???", "@#$%^&*", "...", ""}

	for _, input := range inputs {
		_, err := Normalize(input)
		if !errors.Is(err, ErrEmptySlug) {
			t.Errorf("Normalize(%q) error = %v, want ErrEmptySlug", input, err)
		}
	}
}

// fakeSource records calls and serves a fixed slug set.
type fakeSource struct {
	slugs      []string
	calls      int
	gotPrefix  string
	gotExclude int64
	err        error
}

func (f *fakeSource) SlugsWithPrefix(_ context.Context, prefix string, excludeID int64) ([]string, error) {
	f.calls++
	f.gotPrefix = prefix
	f.gotExclude = excludeID
	return f.slugs, f.err
}

func TestResolve_NoCollision(t *testing.T) {
	src := &fakeSource{slugs: []string{"bar", "baz"}}

	got, err := Resolve(context.Background(), src, "foo", 0, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "foo" {
		t.Errorf("Resolve() = %q, want %q", got, "foo")
	}
	if src.gotPrefix != "foo" {
		t.Errorf("queried prefix %q, want %q", src.gotPrefix, "foo")
	}
}

func TestResolve_SmallestFreeSuffix(t *testing.T) {
	src := &fakeSource{slugs: []string{"foo", "foo-2"}}

	got, err := Resolve(context.Background(), src, "foo", 0, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "foo-3" {
		t.Errorf("Resolve() = %q, want %q", got, "foo-3")
	}
}

func TestResolve_FillsGap(t *testing.T) {
	src := &fakeSource{slugs: []string{"foo", "foo-3", "foo-4"}}

	got, err := Resolve(context.Background(), src, "foo", 0, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "foo-2" {
		t.Errorf("Resolve() = %q, want %q", got, "foo-2")
	}
}

func TestResolve_EditKeepsUnchangedSlug(t *testing.T) {
	src := &fakeSource{slugs: []string{"foo"}}

	got, err := Resolve(context.Background(), src, "foo", 7, "foo")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "foo" {
		t.Errorf("Resolve() = %q, want %q", got, "foo")
	}
	if src.calls != 0 {
		t.Errorf("expected no source query for an unchanged slug, got %d", src.calls)
	}
}

func TestResolve_EditExcludesOwnID(t *testing.T) {
	src := &fakeSource{slugs: []string{}}

	if _, err := Resolve(context.Background(), src, "foo", 42, "old-slug"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if src.gotExclude != 42 {
		t.Errorf("excluded id %d, want 42", src.gotExclude)
	}
}

func TestResolve_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}

	if _, err := Resolve(context.Background(), src, "foo", 0, ""); err == nil {
		t.Fatal("Resolve() expected error, got nil")
	}
}
