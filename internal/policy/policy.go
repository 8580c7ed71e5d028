// Package policy is the single place where roles are mapped to capabilities.
// Handlers never compare role strings directly; they declare the capability an
// operation needs and the middleware asks Allow once per request.
package policy

// Capability names an operation class that can be gated.
type Capability string

const (
	ManageUsers    Capability = "manage_users"    // create/delete users, reset passwords
	ManageCatalog  Capability = "manage_catalog"  // product/customer/vendor writes
	CreateSale     Capability = "create_sale"     // invoices and purchases
	RecordPayment  Capability = "record_payment"  // payments and vendor payments
	ManageStock    Capability = "manage_stock"    // manual stock updates
	ManageExpenses Capability = "manage_expenses" // expense CRUD
	ViewReports    Capability = "view_reports"    // reports, dashboard, exports
)

// Roles recognised by the system.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleOwner    = "owner"
)

// grants is the full role → capability table. Admin and owner hold every
// capability; employees run the counter but cannot administer users.
var grants = map[string]map[Capability]bool{
	RoleAdmin: {
		ManageUsers: true, ManageCatalog: true, CreateSale: true,
		RecordPayment: true, ManageStock: true, ManageExpenses: true, ViewReports: true,
	},
	RoleOwner: {
		ManageUsers: true, ManageCatalog: true, CreateSale: true,
		RecordPayment: true, ManageStock: true, ManageExpenses: true, ViewReports: true,
	},
	RoleEmployee: {
		ManageCatalog: true, CreateSale: true, RecordPayment: true,
		ManageStock: true, ManageExpenses: true, ViewReports: true,
	},
}

// Allow reports whether role holds the capability. Unknown roles hold nothing.
func Allow(role string, cap Capability) bool {
	return grants[role][cap]
}
