// Package analyzers holds the built-in annotation analyzers.
package analyzers

import "genmark/internal/analyzer"

// Annotation names handled here.
const (
	EqualsAndHashCodeName = "lombok.EqualsAndHashCode"
	SingularName          = "lombok.Singular"
	NoArgsConstructorName = "lombok.NoArgsConstructor"
	DataName              = "lombok.Data"
)

// Register adds every built-in analyzer to r. @Data implies
// @EqualsAndHashCode, so the same analyzer serves both.
func Register(r *analyzer.Registry) {
	eq := EqualsAndHashCode{}
	r.Register(EqualsAndHashCodeName, eq)
	r.Register(DataName, eq)
	r.Register(SingularName, Singular{})
	r.Register(NoArgsConstructorName, NoArgsConstructor{})
}
