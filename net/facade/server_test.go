package facade

import (
	"testing"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/view"
)

func TestDecodeJoinAssignsClientID(t *testing.T) {
	s := New(8)
	c := &client{send: make(chan view.WorldMessage, 1)}

	act, ok := s.decode(c, inboundFrame{Kind: "join", Name: "Alice"})
	if !ok {
		t.Fatalf("expected join to be accepted")
	}
	if act.Kind != action.Join || act.Player != c.id {
		t.Fatalf("unexpected action: %+v", act)
	}
	if c.id != "Alice" {
		t.Fatalf("client id = %q, want Alice", c.id)
	}
}

func TestDecodeJoinRejectsInvalidName(t *testing.T) {
	s := New(8)
	c := &client{send: make(chan view.WorldMessage, 1)}

	_, ok := s.decode(c, inboundFrame{Kind: "join", Name: ""})
	if ok {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestDecodeInputPassesThroughControl(t *testing.T) {
	s := New(8)
	c := &client{send: make(chan view.WorldMessage, 1)}
	c.id = "Alice"

	ctrl := action.Control{Direct: &action.DirectChange{Kind: action.DirectMovement}}
	act, ok := s.decode(c, inboundFrame{Kind: "input", Control: ctrl})
	if !ok {
		t.Fatalf("expected input frame to decode")
	}
	if act.Kind != action.Input || act.Player != "Alice" {
		t.Fatalf("unexpected action: %+v", act)
	}
}

func TestDecodeUnknownKindRejected(t *testing.T) {
	s := New(8)
	c := &client{send: make(chan view.WorldMessage, 1)}

	_, ok := s.decode(c, inboundFrame{Kind: "bogus"})
	if ok {
		t.Fatalf("expected unknown frame kind to be rejected")
	}
}

func TestDeliverSkipsDisconnectedPlayers(t *testing.T) {
	s := New(8)
	c := &client{id: "Alice", send: make(chan view.WorldMessage, 1)}
	s.clients["Alice"] = c

	s.Deliver(map[playerid.PlayerId]view.WorldMessage{
		"Alice": {Tick: 1},
		"Bob":   {Tick: 1},
	})

	select {
	case msg := <-c.send:
		if msg.Tick != 1 {
			t.Fatalf("unexpected message: %+v", msg)
		}
	default:
		t.Fatalf("expected Alice to receive a message")
	}
}
