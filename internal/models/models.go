package models

// All returns every persisted model in dependency order, for AutoMigrate and drops.
func All() []interface{} {
	return []interface{}{
		&Property{},
		&Tenant{},
		&Lease{},
		&MaintenanceRequest{},
		&Transaction{},
		&File{},
	}
}
