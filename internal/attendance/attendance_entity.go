package attendance

import (
	"strconv"
	"strings"
	"time"

	attendanceerrors "obracheck/internal/attendance/errors"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusNotRecorded Status = "NOT_RECORDED"
	StatusPresent     Status = "PRESENT"
	StatusAbsent      Status = "ABSENT"
	StatusLate        Status = "LATE"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotRecorded, StatusPresent, StatusAbsent, StatusLate}

// ParseStatus accepts the wire tokens case-insensitively. A blank token means
// no decision was taken yet.
func ParseStatus(raw string) (Status, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return StatusNotRecorded, nil
	}
	for _, s := range Statuses {
		if string(s) == token {
			return s, nil
		}
	}
	return "", attendanceerrors.ErrInvalidStatus
}

// Label is the Spanish caption printed on reports.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Presente"
	case StatusAbsent:
		return "Ausente"
	case StatusLate:
		return "Tarde"
	default:
		return "Sin registrar"
	}
}

// Record is one worker's attendance within a (site, date) roster.
type Record struct {
	WorkerID   int64
	WorkerName string
	CI         string
	Status     Status
}

// Roster keeps the order in which records were reconciled. Worker ids are
// unique.
type Roster []Record

func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

func (r Roster) IndexOf(workerID int64) int {
	for i := range r {
		if r[i].WorkerID == workerID {
			return i
		}
	}
	return -1
}

func (r Roster) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, rec := range r {
		counts[rec.Status]++
	}
	return counts
}

// RosterKey identifies one screen session.
type RosterKey struct {
	SiteID int64
	Date   string
}

func NewRosterKey(siteID int64, date string) (RosterKey, error) {
	if siteID <= 0 {
		return RosterKey{}, attendanceerrors.ErrInvalidSiteID
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return RosterKey{}, attendanceerrors.ErrInvalidDateFormat
	}
	return RosterKey{SiteID: siteID, Date: date}, nil
}

func (k RosterKey) String() string {
	return strconv.FormatInt(k.SiteID, 10) + "/" + k.Date
}

// SiteRoster is a roster together with the site it belongs to.
type SiteRoster struct {
	Key      RosterKey
	SiteName string
	Records  Roster
}
