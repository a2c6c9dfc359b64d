package attendance

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RecordResponse struct {
	WorkerID    int64  `json:"worker_id"`
	WorkerName  string `json:"worker_name"`
	CI          string `json:"ci"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
}

type SummaryResponse struct {
	Total       int `json:"total"`
	NotRecorded int `json:"not_recorded"`
	Present     int `json:"present"`
	Absent      int `json:"absent"`
	Late        int `json:"late"`
}

type RosterResponse struct {
	SiteID   int64            `json:"site_id"`
	SiteName string           `json:"site_name,omitempty"`
	Date     string           `json:"date"`
	Records  []RecordResponse `json:"records"`
	Summary  SummaryResponse  `json:"summary"`
}

func mapToResponse(r SiteRoster) RosterResponse {
	records := make([]RecordResponse, len(r.Records))
	for i, rec := range r.Records {
		records[i] = RecordResponse{
			WorkerID:    rec.WorkerID,
			WorkerName:  rec.WorkerName,
			CI:          rec.CI,
			Status:      string(rec.Status),
			StatusLabel: rec.Status.Label(),
		}
	}

	counts := r.Records.CountByStatus()
	return RosterResponse{
		SiteID:   r.Key.SiteID,
		SiteName: r.SiteName,
		Date:     r.Key.Date,
		Records:  records,
		Summary: SummaryResponse{
			Total:       len(r.Records),
			NotRecorded: counts[StatusNotRecorded],
			Present:     counts[StatusPresent],
			Absent:      counts[StatusAbsent],
			Late:        counts[StatusLate],
		},
	}
}
