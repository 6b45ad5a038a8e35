package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/easelhq/easel/internal/model"
	"github.com/nats-io/nats.go"
)

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	if err := pub.Publish(context.Background(), TopicBoardCreated, BoardCreated{}); err != nil {
		t.Fatalf("NoopPublisher.Publish returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_Close(t *testing.T) {
	pub := &NoopPublisher{}
	if err := pub.Close(); err != nil {
		t.Fatalf("NoopPublisher.Close returned unexpected error: %v", err)
	}
}

func TestNoopPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
}

func TestNATSPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	// Subscribe on a separate connection to observe the published payload.
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer nc.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(TopicBoardCreated, received)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Unsubscribe()
	nc.Flush()

	event := BoardCreated{Board: &model.Board{ID: 1700000000000, Name: "inspo"}}
	if err := pub.Publish(context.Background(), TopicBoardCreated, event); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	pub.conn.Flush()

	select {
	case msg := <-received:
		var got BoardCreated
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		if got.Board == nil || got.Board.ID != 1700000000000 || got.Board.Name != "inspo" {
			t.Errorf("event = %+v, want board 1700000000000 %q", got, "inspo")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
