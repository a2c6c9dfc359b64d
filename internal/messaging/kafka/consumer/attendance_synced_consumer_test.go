package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"obracheck/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.queue) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

type invalidation struct {
	siteID int64
	date   string
}

// fakeReports fails the first `failures` calls.
type fakeReports struct {
	calls    []invalidation
	failures int
}

func (f *fakeReports) Invalidate(ctx context.Context, siteID int64, date string) error {
	f.calls = append(f.calls, invalidation{siteID, date})
	if len(f.calls) <= f.failures {
		return errors.New("redis down")
	}
	return nil
}

func eventMessage(t *testing.T, offset int64, ev events.AttendanceSyncedEvent) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(ev)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: payload}
}

func TestConsumeAttendanceSynced(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			eventMessage(t, 1, events.AttendanceSyncedEvent{SyncID: "s1", SiteID: 7, Date: "2025-03-14", Status: events.SyncStatusSucceeded}),
			eventMessage(t, 2, events.AttendanceSyncedEvent{SyncID: "s2", SiteID: 7, Date: "2025-03-14", Status: events.SyncStatusFailed}),
			{Offset: 3, Value: []byte("not json")},
		},
	}
	reports := &fakeReports{}

	ConsumeAttendanceSynced(ctx, reader, reports, zap.NewNop())

	assert.Equal(t, []invalidation{{7, "2025-03-14"}}, reports.calls)
	assert.Len(t, reader.committed, 3)
}

func TestHandleAttendanceSynced_InvalidateRetry(t *testing.T) {
	invalidateBackoff = time.Millisecond
	msg := eventMessage(t, 5, events.AttendanceSyncedEvent{SiteID: 7, Date: "2025-03-14", Status: events.SyncStatusSucceeded})

	t.Run("transient failure - retried then committed", func(t *testing.T) {
		reader := &fakeReader{}
		reports := &fakeReports{failures: 2}

		handleAttendanceSynced(context.Background(), reader, reports, msg, zap.NewNop())

		assert.Len(t, reports.calls, 3)
		assert.Equal(t, []kafkago.Message{msg}, reader.committed)
	})

	t.Run("persistent failure - committed after last attempt", func(t *testing.T) {
		reader := &fakeReader{}
		reports := &fakeReports{failures: 10}

		handleAttendanceSynced(context.Background(), reader, reports, msg, zap.NewNop())

		assert.Len(t, reports.calls, invalidateAttempts)
		assert.Equal(t, []kafkago.Message{msg}, reader.committed)
	})

	t.Run("shutdown during retry - left uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		reader := &fakeReader{}
		reports := &fakeReports{failures: 10}

		handleAttendanceSynced(ctx, reader, reports, msg, zap.NewNop())

		assert.Len(t, reports.calls, 1)
		assert.Empty(t, reader.committed)
	})
}
