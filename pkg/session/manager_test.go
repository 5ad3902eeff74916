package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackplay/pkg/journey"
	"trackplay/pkg/model"
)

func TestManager_PutGetRemove(t *testing.T) {
	m := NewManager()

	assert.Nil(t, m.Get("nope"))
	assert.Equal(t, 0, m.Count())

	id := m.Put(&model.Track{ID: "t1", Name: "First"})
	assert.Equal(t, "t1", id)
	require.NotNil(t, m.Get("t1"))
	assert.Equal(t, "First", m.Get("t1").Name)
	assert.Equal(t, 1, m.Count())

	assert.True(t, m.Remove("t1"))
	assert.False(t, m.Remove("t1"))
	assert.Nil(t, m.Get("t1"))
	assert.Equal(t, 0, m.Count())
}

func TestManager_ListOrder(t *testing.T) {
	m := NewManager()
	m.Put(&model.Track{ID: "b"})
	m.Put(&model.Track{ID: "a"})
	m.Put(&model.Track{ID: "c"})

	ids := func() []string {
		var out []string
		for _, trk := range m.List() {
			out = append(out, trk.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c"}, ids())

	// Re-putting an existing id keeps its slot.
	m.Put(&model.Track{ID: "a", Name: "updated"})
	assert.Equal(t, []string{"b", "a", "c"}, ids())
	assert.Equal(t, "updated", m.Get("a").Name)

	m.Remove("a")
	assert.Equal(t, []string{"b", "c"}, ids())
}

func TestManager_Journey(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.Journey())

	j := &journey.Journey{ID: "j1", Segments: []journey.Segment{
		journey.TrackSegment{TrackID: "a", PlayDuration: time.Second},
	}}
	m.SetJourney(j)
	assert.Equal(t, j, m.Journey())

	m.SetJourney(nil)
	assert.Nil(t, m.Journey())
}

func TestManager_Reset(t *testing.T) {
	m := NewManager()
	m.Put(&model.Track{ID: "x"})
	m.SetJourney(&journey.Journey{ID: "j"})

	m.Reset()

	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.List())
	assert.Nil(t, m.Journey())
}
