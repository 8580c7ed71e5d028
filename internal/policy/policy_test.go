package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	// Admin and owner hold everything.
	for _, role := range []string{RoleAdmin, RoleOwner} {
		for _, cap := range []Capability{
			ManageUsers, ManageCatalog, CreateSale, RecordPayment,
			ManageStock, ManageExpenses, ViewReports,
		} {
			assert.True(t, Allow(role, cap), "%s should hold %s", role, cap)
		}
	}

	// Employees run the counter but do not administer users.
	assert.False(t, Allow(RoleEmployee, ManageUsers))
	assert.True(t, Allow(RoleEmployee, CreateSale))
	assert.True(t, Allow(RoleEmployee, RecordPayment))
	assert.True(t, Allow(RoleEmployee, ViewReports))
}

func TestAllow_UnknownRole(t *testing.T) {
	assert.False(t, Allow("intruder", ViewReports))
	assert.False(t, Allow("", CreateSale))
}
