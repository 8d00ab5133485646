package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectForUserType(t *testing.T) {
	assert.Equal(t, "role:admin", SubjectForUserType(" Admin "))
	assert.Equal(t, "role:staff", SubjectForUserType("role:staff"))
	assert.Equal(t, "role:anonymous", SubjectForUserType(""))
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "restaurant.orders", ObjectName("RESTAURANT", "Orders"))
	assert.Equal(t, "global.resource", ObjectName("", ""))
}

func TestNormalizeAction(t *testing.T) {
	assert.Equal(t, "update", NormalizeAction(" Update "))
	assert.Equal(t, "*", NormalizeAction(""))
}

func TestSanitizeMode(t *testing.T) {
	assert.Equal(t, ModeShadow, sanitizeMode(" SHADOW"))
	assert.Equal(t, ModeDisabled, sanitizeMode("disabled"))
	assert.Equal(t, ModeEnforce, sanitizeMode("bogus"))
}
