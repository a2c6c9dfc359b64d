package attendance

import (
	"strconv"
	"strings"

	"obracheck/internal/directory"
	"obracheck/internal/obraapi"
)

// Reconcile merges what the backend holds for a site and day with the worker
// directory.
//
// An empty remote result yields every directory worker of the site as
// NOT_RECORDED. Otherwise the remote list is authoritative: its order is kept,
// blank names and CIs are filled from the directory, and directory workers
// absent from it are not added.
func Reconcile(siteID int64, remote []Record, workers []directory.WorkerRef) Roster {
	siteWorkers := directory.FilterBySite(workers, siteID)

	if len(remote) == 0 {
		roster := make(Roster, 0, len(siteWorkers))
		seen := make(map[int64]struct{}, len(siteWorkers))
		for _, w := range siteWorkers {
			if _, dup := seen[w.ID]; dup {
				continue
			}
			seen[w.ID] = struct{}{}
			roster = append(roster, Record{
				WorkerID:   w.ID,
				WorkerName: w.Name,
				CI:         w.CI,
				Status:     StatusNotRecorded,
			})
		}
		return roster
	}

	byID := make(map[int64]directory.WorkerRef, len(siteWorkers))
	for _, w := range siteWorkers {
		if _, ok := byID[w.ID]; !ok {
			byID[w.ID] = w
		}
	}

	roster := make(Roster, 0, len(remote))
	seen := make(map[int64]struct{}, len(remote))
	for _, rec := range remote {
		if _, dup := seen[rec.WorkerID]; dup {
			continue
		}
		seen[rec.WorkerID] = struct{}{}

		if isBlank(rec.WorkerName) || isBlank(rec.CI) {
			fallbackName := "Worker " + strconv.FormatInt(rec.WorkerID, 10)
			fallbackCI := ""
			if w, ok := byID[rec.WorkerID]; ok {
				fallbackName = w.Name
				fallbackCI = w.CI
			}
			if isBlank(rec.WorkerName) {
				rec.WorkerName = fallbackName
			}
			if isBlank(rec.CI) {
				rec.CI = fallbackCI
			}
		}
		roster = append(roster, rec)
	}
	return roster
}

// BuildBulkRequest turns a roster into the bulk upsert body. A nil date lets
// the backend assume today.
func BuildBulkRequest(siteID int64, date *string, roster Roster) obraapi.BulkAttendanceRequest {
	items := make([]obraapi.BulkAttendanceItem, len(roster))
	for i, rec := range roster {
		items[i] = obraapi.BulkAttendanceItem{
			WorkerID: rec.WorkerID,
			Status:   string(rec.Status),
		}
	}
	return obraapi.BulkAttendanceRequest{
		SiteID: siteID,
		Date:   date,
		Items:  items,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
