package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	owners := []int64{10, 20}

	tests := []struct {
		name   string
		actor  Actor
		expect bool
	}{
		{
			name:   "owner allowed",
			actor:  Actor{ID: 10, Role: RoleStudent},
			expect: true,
		},
		{
			name:   "second owner allowed",
			actor:  Actor{ID: 20, Role: RoleTutor},
			expect: true,
		},
		{
			name:   "stranger denied",
			actor:  Actor{ID: 99, Role: RoleStudent},
			expect: false,
		},
		{
			name:   "admin always allowed",
			actor:  Actor{ID: 99, Role: RoleAdmin},
			expect: true,
		},
		{
			name:   "superAdmin always allowed",
			actor:  Actor{ID: 99, Role: RoleSuperAdmin},
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Allowed(tt.actor, owners, CapEditReservation))
		})
	}
}

func TestAllowed_NoOwners(t *testing.T) {
	assert.False(t, Allowed(Actor{ID: 1, Role: RoleStudent}, nil, CapViewReservation))
	assert.True(t, Allowed(Actor{ID: 1, Role: RoleAdmin}, nil, CapViewReservation))
}

func TestRole_IsAdmin(t *testing.T) {
	assert.False(t, RoleStudent.IsAdmin())
	assert.False(t, RoleTutor.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
}

func TestModality_SupportsVirtual(t *testing.T) {
	assert.False(t, ModalityInPerson.SupportsVirtual())
	assert.True(t, ModalityVirtual.SupportsVirtual())
	assert.True(t, ModalityBoth.SupportsVirtual())
}
