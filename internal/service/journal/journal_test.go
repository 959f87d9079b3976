package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dog_walking/internal/metrics"
	"dog_walking/internal/model"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSheet struct {
	mu       sync.Mutex
	next     int
	rows     map[int]uint
	failWalk uint
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{next: 2, rows: map[int]uint{}}
}

func (f *fakeSheet) FindFirstFreeRow(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next, nil
}

func (f *fakeSheet) InsertWalk(ctx context.Context, row int, walk model.Walk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if walk.ID == f.failWalk {
		return errors.New("quota exceeded")
	}
	f.rows[row] = walk.ID
	f.next = row + 1
	return nil
}

func (f *fakeSheet) written() map[int]uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]uint, len(f.rows))
	for k, v := range f.rows {
		out[k] = v
	}
	return out
}

// fakeWalks реализует domain.WalkRepo; работают только методы журнала.
type fakeWalks struct {
	mu       sync.Mutex
	unsynced []model.Walk
	marked   []uint
	edited   map[uint]bool
	err      error
}

func (f *fakeWalks) GetUnsynced(ctx context.Context) ([]model.Walk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Walk{}
	for _, w := range f.unsynced {
		if !containsID(f.marked, w.ID) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWalks) MarkSynced(ctx context.Context, walk *model.Walk) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.edited[walk.ID] {
		return false, nil
	}
	f.marked = append(f.marked, walk.ID)
	return true, nil
}

func (f *fakeWalks) markedIDs() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint(nil), f.marked...)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeWalks) Add(context.Context, *model.Walk) error { return nil }
func (f *fakeWalks) Update(context.Context, *model.Walk) error { return nil }
func (f *fakeWalks) SoftDelete(context.Context, *model.Walk) error { return nil }
func (f *fakeWalks) GetByID(context.Context, uint) (*model.Walk, error) { return nil, nil }
func (f *fakeWalks) GetAll(context.Context) ([]model.Walk, error) { return nil, nil }
func (f *fakeWalks) Search(context.Context, string) ([]model.Walk, error) { return nil, nil }
func (f *fakeWalks) GetByDog(context.Context, uint) ([]model.Walk, error) { return nil, nil }

func TestSync_WritesAndMarks(t *testing.T) {
	sheet := newFakeSheet()
	walks := &fakeWalks{unsynced: []model.Walk{{ID: 1}, {ID: 2}}}
	m := metrics.New()
	w := NewWorker(sheet, walks, zaptest.NewLogger(t), nil, WithMetrics(m))

	assert.Equal(t, 2, w.Sync(context.Background()))
	assert.Equal(t, map[int]uint{2: 1, 3: 2}, sheet.written())
	assert.Equal(t, []uint{1, 2}, walks.markedIDs())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.JournalSynced))

	assert.Equal(t, 0, w.Sync(context.Background()), "second pass has nothing to do")
}

func TestSync_EditedWalkStaysPending(t *testing.T) {
	sheet := newFakeSheet()
	walks := &fakeWalks{
		unsynced: []model.Walk{{ID: 1}, {ID: 2}},
		edited:   map[uint]bool{2: true},
	}
	m := metrics.New()
	w := NewWorker(sheet, walks, zaptest.NewLogger(t), nil, WithMetrics(m))

	assert.Equal(t, 1, w.Sync(context.Background()))
	assert.Equal(t, []uint{1}, walks.markedIDs())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.JournalFailed))

	walks.mu.Lock()
	walks.edited = nil
	walks.mu.Unlock()

	assert.Equal(t, 1, w.Sync(context.Background()))
	assert.Equal(t, []uint{1, 2}, walks.markedIDs())
	assert.Equal(t, map[int]uint{2: 1, 3: 2, 4: 2}, sheet.written())
}

func TestSync_FailedWalkStaysUnsynced(t *testing.T) {
	sheet := newFakeSheet()
	sheet.failWalk = 1
	walks := &fakeWalks{unsynced: []model.Walk{{ID: 1}, {ID: 2}}}
	m := metrics.New()
	w := NewWorker(sheet, walks, zaptest.NewLogger(t), nil, WithMetrics(m))

	assert.Equal(t, 1, w.Sync(context.Background()))
	assert.Equal(t, []uint{2}, walks.markedIDs())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JournalFailed))

	sheet.mu.Lock()
	sheet.failWalk = 0
	sheet.mu.Unlock()
	assert.Equal(t, 1, w.Sync(context.Background()))
	assert.Equal(t, []uint{2, 1}, walks.markedIDs())
}

func TestSync_RepoError(t *testing.T) {
	walks := &fakeWalks{err: errors.New("db down")}
	w := NewWorker(newFakeSheet(), walks, zaptest.NewLogger(t), nil)

	assert.Equal(t, 0, w.Sync(context.Background()))
}

func TestWorker_TickAndForce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sheet := newFakeSheet()
	walks := &fakeWalks{unsynced: []model.Walk{{ID: 1}}}
	w := NewWorker(sheet, walks, zaptest.NewLogger(t), nil, WithClock(clock), WithInterval(time.Minute))

	w.Start(context.Background())
	defer w.Stop()

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return len(walks.markedIDs()) == 1 }, time.Second, 5*time.Millisecond)

	walks.mu.Lock()
	walks.unsynced = append(walks.unsynced, model.Walk{ID: 2})
	walks.mu.Unlock()

	w.ForceUpdate()
	require.Eventually(t, func() bool { return len(walks.markedIDs()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := NewWorker(newFakeSheet(), &fakeWalks{}, zaptest.NewLogger(t), nil, WithClock(clockwork.NewFakeClock()))
	w.Stop()

	w = NewWorker(newFakeSheet(), &fakeWalks{}, zaptest.NewLogger(t), nil, WithClock(clockwork.NewFakeClock()))
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}

func TestWorker_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(newFakeSheet(), &fakeWalks{}, zaptest.NewLogger(t), nil, WithClock(clockwork.NewFakeClock()))
	w.Start(ctx)
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
