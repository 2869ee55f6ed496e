// Package uri parses, renders and resolves URI references as defined by RFC 3986.
//
// # Overview
//
// A [Reference] holds the five generic components of a URI reference:
//
//	  foo://example.com:8042/over/there?name=ferret#nose
//	  \_/   \______________/\_________/ \_________/ \__/
//	   |           |            |            |        |
//	scheme     authority       path        query   fragment
//
// Each component is a [Component], which is either present or absent.
// A present component may hold an empty string, so "http://a?" and "http://a"
// are different references: the first one renders a trailing "?".
//
// # Parsing
//
// [Parse] never fails. It splits the input exactly like the regular expression
// from RFC 3986 Appendix B:
//
//	^(([^:/?#]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?
//
// Components that end up empty are stored as absent. Parsing does not check
// the component grammar, use [Reference.Validate] for that.
//
//	ref := uri.Parse("http://example.com/a/b?x=1#top")
//	ref.Scheme.Get() // "http", true
//	ref.Path.Get()   // "/a/b", true
//
// # Resolution
//
// [Reference.Resolve] implements the algorithm of RFC 3986 Section 5.2.2,
// including merging of paths and [RemoveDotSegments]:
//
//	base := uri.Parse("http://a/b/c/d;p?q")
//	uri.Parse("../g").Resolve(base).String() // "http://a/b/g"
//
// A [Resolver] binds an absolute base reference for repeated resolutions and
// is safe for concurrent use.
//
// # Query
//
// [Reference.QueryParams] parses the query component into [query.Params].
//
// # Thread Safety
//
// References are not safe for concurrent modification. When sharing references
// across goroutines, either use synchronization or create copies using the Clone method.
package uri
