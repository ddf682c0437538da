package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Caretaker", LevelName(LevelCaretaker))
	assert.Equal(t, "Owner", LevelName(LevelOwner))
	assert.Equal(t, "Superadmin", LevelName(LevelSuperadmin))
}

func TestLevelNameDegradesToCaretaker(t *testing.T) {
	// Unknown levels must not panic and must fail closed on display
	assert.Equal(t, "Caretaker", LevelName(0))
	assert.Equal(t, "Caretaker", LevelName(-1))
	assert.Equal(t, "Caretaker", LevelName(42))
}

func TestThresholds(t *testing.T) {
	assert.False(t, CanManageMembers(LevelNone))
	assert.False(t, CanManageMembers(LevelCaretaker))
	assert.True(t, CanManageMembers(LevelOwner))
	assert.True(t, CanManageMembers(LevelSuperadmin))

	assert.False(t, CanDeleteOrg(LevelOwner))
	assert.True(t, CanDeleteOrg(LevelSuperadmin))
}
