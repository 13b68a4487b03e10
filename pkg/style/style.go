// Package style holds the default style catalogue compiled into relviz.
//
// A style is an ordinary fact source made of type declarations (and,
// rarely, facts). The default UML profile is parsed before any user style
// or fact file, so every name it declares (class, interface, package,
// is-a, has, uses, in, …) is available without a -s flag.
package style

import _ "embed"

// SourceName is the source name reported for positions in the default style.
const SourceName = "<default style>"

//go:embed uml.style
var uml []byte

// Default returns the UML profile. The slice is shared; do not modify it.
func Default() []byte { return uml }
