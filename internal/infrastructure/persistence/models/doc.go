// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, TenantAggregateModel)
// - tenant.go: Tenants and number sequences
// - partner.go: Customers
// - ticketing.go: Tickets, visas and ticket adjustments
// - hajumrah.go: Campaigns, bookings and their packages
// - cargo.go: Branches, shipments, items and tracking logs
// - ledger.go: Payments, receipts, payables, expenses and currency rates
package models

// All lists every persistence model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&TenantModel{},
		&NumberSequenceModel{},
		&CustomerModel{},
		&TicketModel{},
		&VisaModel{},
		&TicketAdjustmentModel{},
		&CampaignModel{},
		&BookingModel{},
		&BookingPackageModel{},
		&BranchModel{},
		&ShipmentModel{},
		&ShipmentItemModel{},
		&TrackingLogModel{},
		&PaymentModel{},
		&ReceiptModel{},
		&PayableModel{},
		&ExpenseModel{},
		&CurrencyRateModel{},
	}
}
