package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptySlug means the candidate had no usable characters, e.g. a
// title made entirely of punctuation. Callers should report it against
// the title field, since titles are the usual slug source.
var ErrEmptySlug = errors.New("slug is empty after normalization")

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Normalize lowercases the candidate and reduces it to a URL path
// segment: only [a-z0-9-], whitespace runs collapsed to a single
// hyphen, hyphen runs collapsed to one.
func Normalize(candidate string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(candidate))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	if s == "" {
		return "", ErrEmptySlug
	}
	return s, nil
}

// Source lists the stored slugs that begin with prefix, excluding the
// post identified by excludeID (0 excludes nothing).
type Source interface {
	SlugsWithPrefix(ctx context.Context, prefix string, excludeID int64) ([]string, error)
}

// Resolve returns a slug for base that does not collide with any slug
// in src at the moment of the check. When editing, postID and
// previousSlug identify the post being saved: a base equal to the
// post's stored slug is returned as-is without querying src, so a post
// never collides with itself.
//
// The check is advisory. Two concurrent saves can both see the same
// free slug; the database unique constraint is the final arbiter and
// its violation is reported by the write, not here.
func Resolve(ctx context.Context, src Source, base string, postID int64, previousSlug string) (string, error) {
	if previousSlug != "" && base == previousSlug {
		return base, nil
	}

	existing, err := src.SlugsWithPrefix(ctx, base, postID)
	if err != nil {
		return "", fmt.Errorf("list slugs with prefix %q: %w", base, err)
	}

	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base, nil
	}

	// The prefix query already fetched every slug that could collide,
	// so scanning suffixes is pure set membership, not more queries.
	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}
