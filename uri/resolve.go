package uri

import (
	"strings"

	"github.com/ghettovoice/uriref/internal/util"
)

// RemoveDotSegments removes "." and ".." segments from the path,
// following RFC 3986 Section 5.2.4 as a sequence of rewrites:
//
//  1. an empty path stays empty;
//  2. every "/./" becomes "/";
//  3. a trailing "/." becomes "/";
//  4. the leftmost "/seg/../", where seg is not "..", becomes "/", repeatedly;
//  5. a trailing "/seg/.." becomes "/";
//  6. every remaining "/../" becomes "/".
//
// Leading "." and ".." segments of relative paths are kept.
// The function is idempotent.
func RemoveDotSegments(path string) string {
	if path == "" {
		return ""
	}

	for strings.Contains(path, "/./") {
		path = strings.ReplaceAll(path, "/./", "/")
	}
	if strings.HasSuffix(path, "/.") {
		path = path[:len(path)-1]
	}

	for {
		i := indexParentSegment(path)
		if i < 0 {
			break
		}
		j := i + 1 + strings.IndexByte(path[i+1:], '/')
		path = path[:i] + "/" + path[j+len("/../"):]
	}

	if head, ok := strings.CutSuffix(path, "/.."); ok {
		if k := strings.LastIndexByte(head, '/'); k >= 0 {
			path = head[:k] + "/"
		}
	}

	for strings.Contains(path, "/../") {
		path = strings.Replace(path, "/../", "/", 1)
	}
	return path
}

// indexParentSegment returns the index of the leftmost "/seg/../" where seg is not "..", or -1.
func indexParentSegment(path string) int {
	for i := 0; i < len(path); i++ {
		if path[i] != '/' {
			continue
		}
		j := strings.IndexByte(path[i+1:], '/')
		if j < 0 {
			return -1
		}
		j += i + 1
		if path[i+1:j] != ".." && strings.HasPrefix(path[j:], "/../") {
			return i
		}
		i = j - 1
	}
	return -1
}

// mergePaths merges the relative path rel with the base path (RFC 3986 Section 5.2.3).
func mergePaths(base *Reference, rel string) string {
	basePath := base.Path.Or("")
	if base.Authority.IsSome() && basePath == "" {
		return "/" + rel
	}
	dir, _, _ := util.CutLast(basePath, "/")
	return dir + rel
}

// Resolve resolves the reference against the base reference (RFC 3986 Section 5.2.2)
// and returns a new target reference. Neither the reference nor the base is modified.
// The fragment of the target always comes from the reference.
// A nil base behaves as an empty reference.
func (r *Reference) Resolve(base *Reference) *Reference {
	if r == nil {
		r = &Reference{}
	}
	if base == nil {
		base = &Reference{}
	}

	var t Reference
	switch {
	case r.Scheme.IsSome():
		t.Scheme = r.Scheme
		t.Authority = r.Authority
		t.Path = component(RemoveDotSegments(r.Path.Or("")))
		t.Query = r.Query
	case r.Authority.IsSome():
		t.Scheme = base.Scheme
		t.Authority = r.Authority
		t.Path = component(RemoveDotSegments(r.Path.Or("")))
		t.Query = r.Query
	default:
		t.Scheme = base.Scheme
		t.Authority = base.Authority
		switch path := r.Path.Or(""); {
		case path == "":
			t.Path = base.Path
			if r.Query.IsSome() {
				t.Query = r.Query
			} else {
				t.Query = base.Query
			}
		case path[0] == '/':
			t.Path = component(RemoveDotSegments(path))
			t.Query = r.Query
		default:
			t.Path = component(RemoveDotSegments(mergePaths(base, path)))
			t.Query = r.Query
		}
	}
	t.Fragment = r.Fragment
	return &t
}
