package modules

import (
	"fmt"
	"sort"
)

// Category groups modules for plan bundling.
type Category string

const (
	CategoryCore    Category = "core"
	CategoryAddon   Category = "addon"
	CategoryPremium Category = "premium"
)

// Plan identifiers understood by DefaultsForPlan.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Definition describes one licensable module.
type Definition struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	Order          int      `json:"order"`
	DefaultEnabled bool     `json:"default_enabled"`
}

// registry is the fixed set of module identifiers. Route handlers reference
// these ids as compile-time constants; anything outside this set is a
// programming error, not user input.
var registry = map[string]Definition{
	"crm":                 {ID: "crm", Name: "CRM", Description: "Customer relationships, deals, and contacts", Category: CategoryCore, Order: 1, DefaultEnabled: true},
	"sales":               {ID: "sales", Name: "Sales Pages", Description: "Landing and checkout pages", Category: CategoryCore, Order: 2, DefaultEnabled: true},
	"marketing":           {ID: "marketing", Name: "Marketing", Description: "Email, social, and WhatsApp campaigns", Category: CategoryCore, Order: 3, DefaultEnabled: true},
	"finance":             {ID: "finance", Name: "Finance & Accounting", Description: "Invoicing, accounting, expenses, and payments", Category: CategoryCore, Order: 4, DefaultEnabled: true},
	"projects":            {ID: "projects", Name: "Projects", Description: "Project management, tasks, and time tracking", Category: CategoryCore, Order: 5, DefaultEnabled: true},
	"hr":                  {ID: "hr", Name: "HR", Description: "Employees, payroll, leave, and attendance", Category: CategoryCore, Order: 6, DefaultEnabled: true},
	"communication":       {ID: "communication", Name: "Communication", Description: "Email, chat, SMS, and WhatsApp", Category: CategoryCore, Order: 7, DefaultEnabled: true},
	"inventory":           {ID: "inventory", Name: "Inventory", Description: "Stock, warehouses, and purchase orders", Category: CategoryAddon, Order: 8},
	"analytics":           {ID: "analytics", Name: "Analytics", Description: "Dashboards and business reports", Category: CategoryAddon, Order: 9},
	"field-service":       {ID: "field-service", Name: "Field Service", Description: "Work orders and technician dispatch", Category: CategoryAddon, Order: 10},
	"logistics":           {ID: "logistics", Name: "Logistics", Description: "Shipments, fleets, and delivery tracking", Category: CategoryAddon, Order: 11},
	"lms":                 {ID: "lms", Name: "LMS", Description: "Courses and employee training", Category: CategoryAddon, Order: 12},
	"ai-studio":           {ID: "ai-studio", Name: "AI Studio", Description: "AI assistants and business insights", Category: CategoryPremium, Order: 13},
	"asset-management":    {ID: "asset-management", Name: "Asset Management", Description: "Asset registry and maintenance", Category: CategoryPremium, Order: 14},
	"contract-management": {ID: "contract-management", Name: "Contract Management", Description: "Contract lifecycle and e-sign", Category: CategoryPremium, Order: 15},
}

// Known reports whether id is a registered module identifier.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// MustKnown panics when id is not a registered module identifier. Callers
// pass module ids as constants, so an unknown id means broken code and we
// fail loudly instead of silently denying.
func MustKnown(id string) {
	if !Known(id) {
		panic(fmt.Sprintf("modules: unknown module id %q", id))
	}
}

// Get returns the definition for id.
func Get(id string) (Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// All returns every module definition ordered for display.
func All() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Order < defs[j].Order })
	return defs
}

// DefaultsForPlan returns the module set a plan carries before any explicit
// license rows exist for the tenant. Unknown plans get the free bundle.
func DefaultsForPlan(plan string) Set {
	switch plan {
	case PlanEnterprise:
		set := NewSet()
		for id := range registry {
			set.Add(id)
		}
		return set
	case PlanProfessional:
		set := NewSet()
		for id, def := range registry {
			if def.Category == CategoryCore || def.Category == CategoryAddon {
				set.Add(id)
			}
		}
		return set
	case PlanStarter:
		set := NewSet()
		for id, def := range registry {
			if def.DefaultEnabled {
				set.Add(id)
			}
		}
		return set
	default:
		return NewSet("crm")
	}
}
