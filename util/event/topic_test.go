package event

import (
	"reflect"
	"testing"
)

func TestPublishInSubscriptionOrder(t *testing.T) {
	var topic Topic[int]
	var got []string

	topic.Subscribe(func(v int) { got = append(got, "first") })
	topic.Subscribe(func(v int) { got = append(got, "second") })
	topic.Publish(1)

	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnsubscribe(t *testing.T) {
	var topic Topic[string]
	calls := 0

	sub := topic.Subscribe(func(string) { calls++ })
	topic.Publish("a")
	sub.Unsubscribe()
	sub.Unsubscribe()
	topic.Publish("b")

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if topic.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", topic.Len())
	}
}

func TestUnsubscribeNil(t *testing.T) {
	var sub *Subscription
	sub.Unsubscribe()
}

func TestMutationDuringPublish(t *testing.T) {
	var topic Topic[int]
	var order []string

	var second *Subscription
	topic.Subscribe(func(int) {
		order = append(order, "first")
		second.Unsubscribe()
		topic.Subscribe(func(int) { order = append(order, "late") })
	})
	second = topic.Subscribe(func(int) { order = append(order, "second") })

	// The snapshot taken at Publish still includes the second subscriber,
	// and excludes the one added during dispatch
	topic.Publish(0)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("first publish: got %v, want %v", order, want)
	}

	order = nil
	topic.Publish(0)
	want = []string{"first", "late"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("second publish: got %v, want %v", order, want)
	}
}
