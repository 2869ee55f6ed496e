// Package constraints provides type constraints for generic parse functions.
package constraints

// Byteseq is satisfied by string and byte slice types,
// so parsers accept both without an extra conversion at the call site.
type Byteseq interface {
	~string | ~[]byte
}
