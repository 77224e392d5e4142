package domain

import "time"

type Dealer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	DMSVendor string    `db:"dms_vendor" json:"dms_vendor"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDealerRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	DMSVendor string `json:"dms_vendor"`
	Timezone  string `json:"timezone"`
}

// SyncConfig describes where a dealer's DMS export feed lives.
type SyncConfig struct {
	ID        int64     `db:"id" json:"id"`
	DealerID  string    `db:"dealer_id" json:"dealer_id"`
	FeedURL   string    `db:"feed_url" json:"feed_url"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpsertSyncConfigRequest struct {
	DealerID string `json:"dealer_id" validate:"required"`
	FeedURL  string `json:"feed_url" validate:"required,url"`
	Enabled  bool   `json:"enabled"`
}

// SyncLog is one ingestion run; the admin sync-status view renders these
// counts verbatim.
type SyncLog struct {
	ID            string    `db:"id" json:"id"`
	DealerID      string    `db:"dealer_id" json:"dealer_id"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	FinishedAt    time.Time `db:"finished_at" json:"finished_at"`
	TotalRecords  int       `db:"total_records" json:"total_records"`
	NewRecords    int       `db:"new_records" json:"new_records"`
	FailedRecords int       `db:"failed_records" json:"failed_records"`
	ErrorDetail   string    `db:"error_detail" json:"error_detail"`
}
