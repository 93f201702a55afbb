package chat_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendKeepsInsertionOrder(t *testing.T) {
	req := require.New(t)
	history := chat.NewHistory()

	// Given an empty history
	req.Empty(history.Snapshot())

	// When three texts are appended
	history.Append("one")
	history.Append("two")
	history.Append("three")

	// Then the snapshot holds them in order
	req.Equal([]string{"one", "two", "three"}, history.Snapshot())
	req.Equal(3, history.Len())
}

func TestHistory_SnapshotIsDetached(t *testing.T) {
	req := require.New(t)
	history := chat.NewHistory()
	history.Append("original")

	snapshot := history.Snapshot()
	snapshot[0] = "tampered"
	history.Append("later")

	req.Equal([]string{"tampered"}, snapshot)
	req.Equal([]string{"original", "later"}, history.Snapshot())
}

func TestHistory_ConcurrentSnapshotsArePrefixes(t *testing.T) {
	req := require.New(t)
	history := chat.NewHistory()

	const writers, perWriter = 4, 200
	var wg sync.WaitGroup
	snapshots := make(chan []string, 1000)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				history.Append(fmt.Sprintf("w%d-%03d", w, i))
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			snapshots <- history.Snapshot()
		}
	}()

	wg.Wait()
	<-done
	close(snapshots)

	final := history.Snapshot()
	req.Len(final, writers*perWriter)
	for snap := range snapshots {
		req.Equal(final[:len(snap)], snap)
	}
}
