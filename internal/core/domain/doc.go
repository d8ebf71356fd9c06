// Package domain defines the core business entities for petmatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Animal: A shelter animal available for adoption
//   - Catalog: The immutable, ordered set of animals loaded at startup
//   - Preferences: The adopter's answers, one optional field per question
//   - MatchResult: A ranked list of animals with similarity scores
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
