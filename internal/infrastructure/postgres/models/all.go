package models

// All - модели для gorm AutoMigrate.
func All() []any {
	return []any{
		&LocationModel{},
		&BufferProfileModel{},
		&BufferStateModel{},
		&RecalculationHistoryModel{},
		&OnHandSnapshotModel{},
		&OpenSupplyOrderModel{},
		&DemandRecordModel{},
		&PlannedAdjustmentModel{},
		&SalesOrderModel{},
		&OrderQualificationModel{},
		&BreachEventModel{},
		&ReplenishmentOrderModel{},
		&DecouplingRecommendationModel{},
	}
}
