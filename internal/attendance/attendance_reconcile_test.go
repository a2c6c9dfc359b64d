package attendance_test

import (
	"encoding/json"
	"testing"

	"obracheck/internal/attendance"
	"obracheck/internal/directory"

	"github.com/stretchr/testify/assert"
)

var siteDirectory = []directory.WorkerRef{
	{ID: 1, Name: "Ana Quispe", CI: "4455667", SiteID: 7},
	{ID: 2, Name: "Luis Mamani", CI: "1122334", SiteID: 9},
	{ID: 3, Name: "Rosa Choque", CI: "9988776", SiteID: 7},
	{ID: 4, Name: "Juan Flores", CI: "5566778", SiteID: 7},
}

func TestReconcile_EmptyRemote(t *testing.T) {
	roster := attendance.Reconcile(7, nil, siteDirectory)

	assert.Equal(t, attendance.Roster{
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusNotRecorded},
		{WorkerID: 3, WorkerName: "Rosa Choque", CI: "9988776", Status: attendance.StatusNotRecorded},
		{WorkerID: 4, WorkerName: "Juan Flores", CI: "5566778", Status: attendance.StatusNotRecorded},
	}, roster)
}

func TestReconcile_EmptyRemoteAndNoWorkersAtSite(t *testing.T) {
	roster := attendance.Reconcile(42, []attendance.Record{}, siteDirectory)

	assert.Empty(t, roster)
}

func TestReconcile_Backfill(t *testing.T) {
	tests := []struct {
		name   string
		remote attendance.Record
		want   attendance.Record
	}{
		{
			name:   "blank name and ci - filled from directory",
			remote: attendance.Record{WorkerID: 3, Status: attendance.StatusPresent},
			want:   attendance.Record{WorkerID: 3, WorkerName: "Rosa Choque", CI: "9988776", Status: attendance.StatusPresent},
		},
		{
			name:   "whitespace counts as blank",
			remote: attendance.Record{WorkerID: 1, WorkerName: "  ", CI: "\t", Status: attendance.StatusLate},
			want:   attendance.Record{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusLate},
		},
		{
			name:   "non blank name kept, blank ci filled",
			remote: attendance.Record{WorkerID: 1, WorkerName: "Ana Q.", Status: attendance.StatusAbsent},
			want:   attendance.Record{WorkerID: 1, WorkerName: "Ana Q.", CI: "4455667", Status: attendance.StatusAbsent},
		},
		{
			name:   "unknown worker - placeholder name and empty ci",
			remote: attendance.Record{WorkerID: 99, Status: attendance.StatusPresent},
			want:   attendance.Record{WorkerID: 99, WorkerName: "Worker 99", CI: "", Status: attendance.StatusPresent},
		},
		{
			name:   "worker of another site is not used for backfill",
			remote: attendance.Record{WorkerID: 2, Status: attendance.StatusPresent},
			want:   attendance.Record{WorkerID: 2, WorkerName: "Worker 2", CI: "", Status: attendance.StatusPresent},
		},
		{
			name:   "complete record untouched",
			remote: attendance.Record{WorkerID: 4, WorkerName: "J. Flores", CI: "000", Status: attendance.StatusPresent},
			want:   attendance.Record{WorkerID: 4, WorkerName: "J. Flores", CI: "000", Status: attendance.StatusPresent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := attendance.Reconcile(7, []attendance.Record{tt.remote}, siteDirectory)

			assert.Equal(t, attendance.Roster{tt.want}, roster)
		})
	}
}

func TestReconcile_NonEmptyRemoteIsAuthoritative(t *testing.T) {
	remote := []attendance.Record{
		{WorkerID: 4, WorkerName: "Juan Flores", CI: "5566778", Status: attendance.StatusPresent},
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusAbsent},
	}

	roster := attendance.Reconcile(7, remote, siteDirectory)

	// server order kept, worker 3 not appended
	assert.Len(t, roster, 2)
	assert.Equal(t, int64(4), roster[0].WorkerID)
	assert.Equal(t, int64(1), roster[1].WorkerID)
	assert.Equal(t, -1, roster.IndexOf(3))
}

func TestReconcile_DuplicateRemoteKeepsFirst(t *testing.T) {
	remote := []attendance.Record{
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusPresent},
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusAbsent},
	}

	roster := attendance.Reconcile(7, remote, siteDirectory)

	assert.Len(t, roster, 1)
	assert.Equal(t, attendance.StatusPresent, roster[0].Status)
}

func TestReconcile_NeverIncludesForeignSiteWorkers(t *testing.T) {
	for _, remote := range [][]attendance.Record{nil, {{WorkerID: 1, Status: attendance.StatusPresent}}} {
		roster := attendance.Reconcile(7, remote, siteDirectory)
		for _, rec := range roster {
			assert.NotEqual(t, int64(2), rec.WorkerID)
			assert.NotEqual(t, "Luis Mamani", rec.WorkerName)
		}
	}
}

func TestBuildBulkRequest(t *testing.T) {
	roster := attendance.Roster{
		{WorkerID: 3, WorkerName: "Rosa Choque", CI: "9988776", Status: attendance.StatusLate},
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusNotRecorded},
	}

	t.Run("with date", func(t *testing.T) {
		date := "2024-05-01"
		req := attendance.BuildBulkRequest(7, &date, roster)

		body, err := json.Marshal(req)
		assert.NoError(t, err)
		assert.JSONEq(t,
			`{"siteId":7,"date":"2024-05-01","items":[{"workerId":3,"status":"LATE"},{"workerId":1,"status":"NOT_RECORDED"}]}`,
			string(body))
	})

	t.Run("nil date omitted", func(t *testing.T) {
		req := attendance.BuildBulkRequest(7, nil, roster)

		body, err := json.Marshal(req)
		assert.NoError(t, err)
		assert.NotContains(t, string(body), "date")
		assert.NotContains(t, string(body), "Rosa")
	})

	t.Run("empty roster", func(t *testing.T) {
		req := attendance.BuildBulkRequest(7, nil, nil)

		assert.NotNil(t, req.Items)
		assert.Empty(t, req.Items)
	})
}

func TestRoundTrip_PayloadReconcilesToSameStatuses(t *testing.T) {
	roster := attendance.Reconcile(7, nil, siteDirectory)
	roster[0].Status = attendance.StatusPresent
	roster[2].Status = attendance.StatusLate

	date := "2024-05-01"
	req := attendance.BuildBulkRequest(7, &date, roster)

	// what the backend would answer after storing the payload, without names
	remote := make([]attendance.Record, len(req.Items))
	for i, item := range req.Items {
		status, err := attendance.ParseStatus(item.Status)
		assert.NoError(t, err)
		remote[i] = attendance.Record{WorkerID: item.WorkerID, Status: status}
	}

	again := attendance.Reconcile(7, remote, siteDirectory)

	assert.Equal(t, roster, again)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    attendance.Status
		wantErr bool
	}{
		{in: "PRESENT", want: attendance.StatusPresent},
		{in: " late ", want: attendance.StatusLate},
		{in: "absent", want: attendance.StatusAbsent},
		{in: "", want: attendance.StatusNotRecorded},
		{in: "NOT_RECORDED", want: attendance.StatusNotRecorded},
		{in: "HOLIDAY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := attendance.ParseStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRosterKey(t *testing.T) {
	_, err := attendance.NewRosterKey(0, "2024-05-01")
	assert.Error(t, err)

	_, err = attendance.NewRosterKey(7, "2024-13-01")
	assert.Error(t, err)

	key, err := attendance.NewRosterKey(7, "2024-05-01")
	assert.NoError(t, err)
	assert.Equal(t, "7/2024-05-01", key.String())
}
