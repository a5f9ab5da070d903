package ws

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records everything written to it.
type fakeConn struct {
	events []Event
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.events = append(f.events, v.(Event))
	return nil
}

func TestHubJoinAndBroadcast(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}
	outsider := &fakeConn{}

	hub.Join("community-1", "user-a", a)
	hub.Join("community-1", "user-b", b)
	hub.Join("community-2", "user-c", outsider)

	hub.BroadcastToCommunity("community-1", "newMessage", map[string]string{"body": "hi"})

	require.Len(t, a.events, 1)
	assert.Equal(t, "newMessage", a.events[0].Event)
	require.Len(t, b.events, 1)
	assert.Empty(t, outsider.events)
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}

	hub.Join("community-1", "user-a", conn)
	hub.Leave("community-1", conn)
	hub.BroadcastToCommunity("community-1", "newMessage", nil)

	assert.Empty(t, conn.events)
	assert.Equal(t, 0, hub.RoomSize("community-1"))
}

func TestHubLeaveAll(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	other := &fakeConn{}

	hub.Join("community-1", "user-a", conn)
	hub.Join("community-2", "user-a", conn)
	hub.Join("community-2", "user-b", other)

	hub.LeaveAll(conn)

	assert.Equal(t, 0, hub.RoomSize("community-1"))
	assert.Equal(t, 1, hub.RoomSize("community-2"))

	hub.BroadcastToCommunity("community-2", "newMessage", nil)
	assert.Empty(t, conn.events)
	assert.Len(t, other.events, 1)
}

func TestHubEvictFromCommunity(t *testing.T) {
	hub := NewHub()
	removed := &fakeConn{}
	stays := &fakeConn{}

	hub.Join("community-1", "user-a", removed)
	hub.Join("community-1", "user-b", stays)
	hub.Join("community-2", "user-a", removed)

	hub.EvictFromCommunity("community-1", "user-a")

	// The evicted connection is told, then stops receiving broadcasts there.
	require.Len(t, removed.events, 1)
	assert.Equal(t, "removed", removed.events[0].Event)
	assert.Equal(t, "community-1", removed.events[0].Data)

	hub.BroadcastToCommunity("community-1", "newMessage", nil)
	assert.Len(t, removed.events, 1)
	assert.Len(t, stays.events, 1)

	// Other rooms are untouched.
	assert.Equal(t, 1, hub.RoomSize("community-2"))
}

func TestHubEvictUnknownRoom(t *testing.T) {
	hub := NewHub()

	// No room, no panic.
	hub.EvictFromCommunity("community-1", "user-a")
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()

	// No subscribers, no panic.
	hub.BroadcastToCommunity("community-1", "newMessage", nil)
	assert.Equal(t, 0, hub.RoomSize("community-1"))
}

func TestHubJoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}

	hub.Join("community-1", "user-a", conn)
	hub.Join("community-1", "user-a", conn)

	hub.BroadcastToCommunity("community-1", "newMessage", nil)
	assert.Len(t, conn.events, 1)
}

// overlapConn counts writes that enter while another write is in flight.
type overlapConn struct {
	active   int32
	overlaps int32
	writes   int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.active, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	runtime.Gosched()
	atomic.AddInt32(&c.active, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func TestClientSerializesHubAndAckWrites(t *testing.T) {
	// Hub broadcasts and read-loop acks target the same connection from
	// different goroutines; the client lock must keep them from overlapping.
	hub := NewHub()
	underlying := &overlapConn{}
	cl := newClient(underlying)
	hub.Join("community-1", "user-a", cl)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.BroadcastToCommunity("community-1", "newMessage", nil)
		}()
		go func() {
			defer wg.Done()
			_ = cl.WriteJSON(Event{Event: "joined", Data: "community-1"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&underlying.overlaps))
	assert.Equal(t, int32(400), atomic.LoadInt32(&underlying.writes))
}
