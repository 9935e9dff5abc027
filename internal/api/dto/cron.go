package dto

// DispatchSummary reports the outcome of a per-tenant notification sweep.
type DispatchSummary struct {
	Tenants  int `json:"tenants"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
