package model

import "time"

// SnapshotVersion tags exported backup files. Bump only with a migration
// path for older files.
const SnapshotVersion = 1

// Snapshot is the portable backup document. The field layout is the
// on-disk backup file format and must stay stable across versions.
type Snapshot struct {
	ExportDate time.Time  `json:"exportDate"`
	Version    int        `json:"version"`
	Products   []Product  `json:"products"`
	Orders     []Order    `json:"orders"`
	Categories []Category `json:"categories"`
}

// TodayStats aggregates the orders of the current local calendar day.
type TodayStats struct {
	OrderCount   int     `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
	ItemsSold    int     `json:"itemsSold"`
}
