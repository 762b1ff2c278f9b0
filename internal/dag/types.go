package dag

// Role is the structural classification of a node, derived from edge
// membership rather than stored state.
type Role int

const (
	// RoleSource marks a node that only ever supplies inputs (a true leaf).
	RoleSource Role = iota
	// RoleTarget marks a produced artifact with no downstream consumer.
	RoleTarget
	// RoleHub marks an intermediate artifact: produced here, consumed elsewhere.
	RoleHub
)

// String returns the role name used in logs and style tables.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	case RoleHub:
		return "hub"
	default:
		return "unknown"
	}
}

// Edge is an ordered (source, target) pair of node keys.
type Edge struct {
	Source string
	Target string
}

// PathAttrs are the layout attributes derived from a node's path-like key.
type PathAttrs struct {
	// Basedir is the first path segment, used for visual grouping.
	Basedir string
	// Stem is the last path segment, the display label fallback.
	Stem string
}
