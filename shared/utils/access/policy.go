package access

// Access levels within an organization. Authorization is always a numeric
// comparison against these thresholds; the names exist for display only.
const (
	LevelCaretaker  = 1
	LevelOwner      = 2
	LevelSuperadmin = 3

	// LevelNone is what a non-member resolves to
	LevelNone = 0
)

// LevelName maps a numeric access level to its display name. Unknown or
// out-of-range levels degrade to the lowest privilege label rather than
// failing; callers gating actions must compare the numeric level instead.
func LevelName(level int) string {
	switch level {
	case LevelOwner:
		return "Owner"
	case LevelSuperadmin:
		return "Superadmin"
	default:
		return "Caretaker"
	}
}

// CanManageMembers reports whether a level may invite, kick and delete
// within its organization.
func CanManageMembers(level int) bool {
	return level >= LevelOwner
}

// CanDeleteOrg reports whether a level may delete the organization itself.
func CanDeleteOrg(level int) bool {
	return level >= LevelSuperadmin
}
