package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func entry(id string, action Action, at time.Time) Entry {
	return Entry{
		ID:        id,
		VersionID: "ver-1",
		Action:    action,
		Timestamp: at,
		AuthorID:  "author-1",
	}
}

func TestAppendAndHistory(t *testing.T) {
	l := New()

	require.NoError(t, l.Append("old fashioned", entry("e1", ActionCreated, baseTime)))
	require.NoError(t, l.Append("old fashioned", entry("e2", ActionPublished, baseTime.Add(time.Minute))))

	got := l.History("old fashioned")
	require.Len(t, got, 2)
	assert.Equal(t, ActionCreated, got[0].Action)
	assert.Equal(t, ActionPublished, got[1].Action)
}

func TestHistoryDefensiveSort(t *testing.T) {
	l := New()

	// Inserted out of order; read comes back by timestamp.
	require.NoError(t, l.Append("f", entry("e3", ActionArchived, baseTime.Add(2*time.Minute))))
	require.NoError(t, l.Append("f", entry("e1", ActionCreated, baseTime)))
	require.NoError(t, l.Append("f", entry("e2", ActionPublished, baseTime.Add(time.Minute))))

	got := l.History("f")
	require.Len(t, got, 3)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)
	assert.Equal(t, "e3", got[2].ID)
}

func TestHistoryTimestampTiebreakByID(t *testing.T) {
	l := New()

	require.NoError(t, l.Append("f", entry("e2", ActionPublished, baseTime)))
	require.NoError(t, l.Append("f", entry("e1", ActionCreated, baseTime)))

	got := l.History("f")
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)
}

func TestEntriesAreCopiedIn(t *testing.T) {
	l := New()

	e := entry("e1", ActionCreated, baseTime)
	e.Changes = []string{"initial recipe"}
	e.Metadata = map[string]string{"source": "book"}
	require.NoError(t, l.Append("f", e))

	// Mutating the caller's value after append must not reach the arena.
	e.Changes[0] = "tampered"
	e.Metadata["source"] = "tampered"

	got := l.History("f")
	require.Len(t, got, 1)
	assert.Equal(t, "initial recipe", got[0].Changes[0])
	assert.Equal(t, "book", got[0].Metadata["source"])
}

func TestHistoryReturnsCopies(t *testing.T) {
	l := New()

	e := entry("e1", ActionCreated, baseTime)
	e.Changes = []string{"initial recipe"}
	require.NoError(t, l.Append("f", e))

	first := l.History("f")
	first[0].Changes[0] = "tampered"
	first[0].ID = "tampered"

	second := l.History("f")
	assert.Equal(t, "initial recipe", second[0].Changes[0])
	assert.Equal(t, "e1", second[0].ID)
}

func TestAppendValidation(t *testing.T) {
	l := New()

	assert.Error(t, l.Append("", entry("e1", ActionCreated, baseTime)))
	assert.Error(t, l.Append("f", entry("", ActionCreated, baseTime)))
	assert.Error(t, l.Append("f", entry("e1", "exploded", baseTime)))
}

func TestUnknownFamilyIsEmpty(t *testing.T) {
	l := New()
	assert.Empty(t, l.History("nobody"))
	assert.Zero(t, l.Count("nobody"))
}

func TestCountAndFamilies(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("margarita", entry("e1", ActionCreated, baseTime)))
	require.NoError(t, l.Append("daiquiri", entry("e2", ActionCreated, baseTime)))
	require.NoError(t, l.Append("daiquiri", entry("e3", ActionPublished, baseTime)))

	assert.Equal(t, 1, l.Count("margarita"))
	assert.Equal(t, 2, l.Count("daiquiri"))
	assert.Equal(t, []string{"daiquiri", "margarita"}, l.Families())
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	l := New()
	e := entry("e1", ActionCreated, baseTime)
	e.Metadata = map[string]string{"k": "v"}
	require.NoError(t, l.Append("f", e))

	snap := l.Snapshot()
	restored := Load(snap)

	// The snapshot is detached from both ledgers.
	snap["f"][0].Metadata["k"] = "tampered"

	assert.Equal(t, "v", l.History("f")[0].Metadata["k"])
	assert.Equal(t, "v", restored.History("f")[0].Metadata["k"])
}

func TestConcurrentAppends(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			e := entry(fmt.Sprintf("e%02d", n), ActionModified, baseTime.Add(time.Duration(n)*time.Second))
			assert.NoError(t, l.Append("f", e))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, l.Count("f"))
	got := l.History("f")
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Timestamp.Before(got[i].Timestamp))
	}
}
