package realtime

import (
	"testing"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
)

func newTestAdapter() *SSEAdapter {
	return NewSSEAdapter(zerolog.Nop())
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	adapter := newTestAdapter()

	ch1 := adapter.Subscribe()
	ch2 := adapter.Subscribe()

	if adapter.ConnectedCount() != 2 {
		t.Fatalf("connected = %d, want 2", adapter.ConnectedCount())
	}

	ticket := &domain.Ticket{ID: "t-1", Subject: "wifi down"}
	adapter.PublishTicketCreated(ticket)

	for i, ch := range []<-chan *domain.TicketEvent{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != domain.EventTicketCreated {
				t.Errorf("subscriber %d: type = %q, want %q", i, event.Type, domain.EventTicketCreated)
			}
			if event.Ticket.ID != "t-1" {
				t.Errorf("subscriber %d: ticket id = %q", i, event.Ticket.ID)
			}
			if event.Seq != 1 {
				t.Errorf("subscriber %d: seq = %d, want 1", i, event.Seq)
			}
		default:
			t.Errorf("subscriber %d received no event", i)
		}
	}
}

func TestSequenceNumbersIncrease(t *testing.T) {
	adapter := newTestAdapter()
	ch := adapter.Subscribe()

	adapter.PublishTicketCreated(&domain.Ticket{ID: "a"})
	adapter.PublishTicketUpdated(&domain.Ticket{ID: "a"})
	adapter.PublishTicketUpdated(&domain.Ticket{ID: "a"})

	var last int64
	for i := 0; i < 3; i++ {
		event := <-ch
		if event.Seq <= last {
			t.Errorf("seq %d not increasing after %d", event.Seq, last)
		}
		last = event.Seq
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	adapter := newTestAdapter()
	ch := adapter.Subscribe()

	adapter.Unsubscribe(ch)

	if adapter.ConnectedCount() != 0 {
		t.Errorf("connected = %d, want 0", adapter.ConnectedCount())
	}
	if _, open := <-ch; open {
		t.Error("channel must be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	adapter.PublishTicketCreated(&domain.Ticket{ID: "a"})
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	adapter := newTestAdapter()
	adapter.Subscribe() // never drained

	for i := 0; i < 300; i++ {
		adapter.PublishTicketCreated(&domain.Ticket{ID: "a"})
	}

	m := adapter.GetMetrics()
	if m.MessagesSent != 256 {
		t.Errorf("sent = %d, want buffer capacity 256", m.MessagesSent)
	}
	if m.MessagesDropped != 44 {
		t.Errorf("dropped = %d, want 44", m.MessagesDropped)
	}
}

func TestSerializeEvent(t *testing.T) {
	event := &domain.TicketEvent{
		Type:   domain.EventTicketCreated,
		Seq:    7,
		Ticket: &domain.Ticket{ID: "t-1"},
	}

	data, err := SerializeEvent(event)
	if err != nil {
		t.Fatalf("SerializeEvent: %v", err)
	}
	if len(data) == 0 {
		t.Error("payload must be non-empty")
	}
}
