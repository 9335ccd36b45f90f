package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesFullSnapshots(t *testing.T) {
	s := newTaskStore(t)

	var got []Snapshot[task]
	cancel := s.Subscribe(func(snap Snapshot[task]) {
		got = append(got, snap)
	})
	defer cancel()

	s.SetAll(sampleTasks())
	s.SelectID("t1")
	s.Update("t1", func(v *task) { v.Status = "done" })
	s.Remove("t1")

	require.Len(t, got, 4)
	assert.Len(t, got[0].Items, 3)
	assert.Nil(t, got[0].Selected)

	require.NotNil(t, got[1].Selected)
	assert.Equal(t, "t1", got[1].Selected.ID)

	require.NotNil(t, got[2].Selected)
	assert.Equal(t, "done", got[2].Selected.Status)
	assert.Equal(t, "done", got[2].Items[0].Status, "items and selection move together")

	assert.Nil(t, got[3].Selected)
	assert.Equal(t, []string{"t2", "t3"}, ids(got[3].Items))
}

func TestSubscribeSkipsNoOps(t *testing.T) {
	s := newTaskStore(t)
	s.SetAll(sampleTasks())

	calls := 0
	cancel := s.Subscribe(func(Snapshot[task]) { calls++ })
	defer cancel()

	s.Update("nonexistent", func(v *task) { v.Title = "x" })
	s.Remove("nonexistent")
	_, _ = s.Filter("byNonexistentName", "x")

	assert.Zero(t, calls)
}

func TestSubscribeCancel(t *testing.T) {
	s := newTaskStore(t)

	var a, b int
	cancelA := s.Subscribe(func(Snapshot[task]) { a++ })
	cancelB := s.Subscribe(func(Snapshot[task]) { b++ })
	defer cancelB()

	s.Add(task{ID: "t1"})
	cancelA()
	cancelA()
	s.Add(task{ID: "t2"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestSubscribersMayReadAndWrite(t *testing.T) {
	s := newTaskStore(t)

	var seen []int
	cancel := s.Subscribe(func(snap Snapshot[task]) {
		seen = append(seen, s.Len())
		if snap.Status.Err != nil && snap.Status.Loading {
			s.SetLoading(false)
		}
	})
	defer cancel()

	s.SetLoading(true)
	s.Add(task{ID: "t1"})
	s.SetError(errors.New("boom"))

	assert.False(t, s.Status().Loading, "subscriber cleared loading from inside a notification")
	assert.Equal(t, []int{0, 1, 1, 1}, seen)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTaskStore(t)
	s.SetAll(sampleTasks())
	s.SelectID("t1")

	snap := s.Snapshot()
	snap.Items[0].Title = "changed"
	snap.Selected.Title = "changed"

	got, _ := s.Get("t1")
	sel, _ := s.Selected()
	assert.Equal(t, "write", got.Title)
	assert.Equal(t, "write", sel.Title)
}

func TestConcurrentMutationsKeepSnapshotsConsistent(t *testing.T) {
	s := newTaskStore(t)
	s.SetAll(sampleTasks())
	s.SelectID("t1")

	var mu sync.Mutex
	var bad int
	cancel := s.Subscribe(func(snap Snapshot[task]) {
		if snap.Selected == nil {
			return
		}
		for _, it := range snap.Items {
			if it.ID == snap.Selected.ID && it != *snap.Selected {
				mu.Lock()
				bad++
				mu.Unlock()
			}
		}
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				title := string(rune('a' + n))
				s.Update("t1", func(v *task) { v.Title = title })
				s.SetLoading(j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	assert.Zero(t, bad)
	sel, _ := s.Selected()
	item, _ := s.Get("t1")
	assert.Equal(t, item, sel)
}

func TestDeliveryFollowsMutationOrder(t *testing.T) {
	s := newTaskStore(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var delivered []bool
	cancel := s.Subscribe(func(snap Snapshot[task]) {
		mu.Lock()
		delivered = append(delivered, snap.Status.Loading)
		first := len(delivered) == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
		}
	})
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.SetLoading(true)
	}()
	<-entered

	// Applied while the first snapshot is still being delivered.
	applied := make(chan struct{})
	go func() {
		defer close(applied)
		s.SetLoading(false)
	}()
	select {
	case <-applied:
	case <-time.After(5 * time.Second):
		t.Fatal("mutation blocked behind a slow subscriber")
	}
	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, delivered)
	assert.Equal(t, s.Status().Loading, delivered[len(delivered)-1], "last delivery is the current state")
}

func TestDeliveryRecoversFromPanickingSubscriber(t *testing.T) {
	s := newTaskStore(t)

	boom := true
	var got []int
	cancel := s.Subscribe(func(snap Snapshot[task]) {
		if boom {
			boom = false
			panic("subscriber failed")
		}
		got = append(got, len(snap.Items))
	})
	defer cancel()

	assert.Panics(t, func() { s.Add(task{ID: "t1"}) })
	s.Add(task{ID: "t2"})
	assert.Equal(t, []int{2}, got)
}
