package directory

// WorkerRef is the identity projection of a worker used by attendance.
type WorkerRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	CI     string `json:"ci"`
	SiteID int64  `json:"site_id"`
}

// FilterBySite keeps the workers assigned to siteID, preserving order.
func FilterBySite(workers []WorkerRef, siteID int64) []WorkerRef {
	out := make([]WorkerRef, 0, len(workers))
	for _, w := range workers {
		if w.SiteID == siteID {
			out = append(out, w)
		}
	}
	return out
}
