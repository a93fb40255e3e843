package models

// ============================================================================
// TASK TYPE CONSTANTS
// ============================================================================

// Task priority labels
const (
	TaskTypeRegular = "Regular"
	TaskTypeMedium  = "Medium"
	TaskTypeUrgent  = "Urgent"
)

// DefaultTaskType is the priority assigned when none is provided
const DefaultTaskType = TaskTypeRegular

// ============================================================================
// CURRENCY CONSTANTS
// ============================================================================

// DefaultCurrency is used when a revenue task carries no explicit currency
const DefaultCurrency = "USD"
