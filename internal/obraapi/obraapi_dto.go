package obraapi

// SiteAttendanceResponse is the body of GET /sites/{siteId}/attendance.
type SiteAttendanceResponse struct {
	SiteID   int64               `json:"siteId"`
	SiteName string              `json:"siteName"`
	Date     string              `json:"date"`
	Items    []AttendanceItemDTO `json:"items"`
}

type AttendanceItemDTO struct {
	ID         int64   `json:"id"`
	WorkerID   int64   `json:"workerId"`
	WorkerName string  `json:"workerName"`
	CI         *string `json:"ci,omitempty"`
	SiteID     int64   `json:"siteId"`
	SiteName   string  `json:"siteName"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
}

// BulkAttendanceRequest is the body of POST /attendance/bulk. Worker identity
// is never sent, the backend already knows it.
type BulkAttendanceRequest struct {
	SiteID int64                `json:"siteId"`
	Date   *string              `json:"date,omitempty"`
	Items  []BulkAttendanceItem `json:"items"`
}

type BulkAttendanceItem struct {
	WorkerID int64  `json:"workerId"`
	Status   string `json:"status"`
}

type WorkerDTO struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Role string   `json:"role"`
	CI   string   `json:"ci"`
	Site *SiteDTO `json:"site"`
}

type SiteDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
