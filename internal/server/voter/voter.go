// Package voter holds the voters consulted by the access decision manager.
//
// A voter first says whether it has an opinion on an attribute (Supports)
// and, if so, gives a yes/no verdict for the caller's identity (Decide).
// Voters are stateless after construction and safe for concurrent use.
package voter

// Voter is a single rule in the authorization pipeline.
type Voter interface {
	// Supports reports whether the voter takes part in decisions on attribute.
	Supports(attribute string) bool

	// Decide returns the verdict for identity. identity may be nil or of a
	// type the voter does not know, in which case the verdict is false.
	Decide(attribute string, identity any) bool
}
