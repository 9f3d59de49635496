package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/logger"
)

func TestBusLogsEventFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	NewBus(log).Publish(Event{Type: CSSChanged, Payload: map[string]any{"elements": 2}})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "session event", entry["message"])
	require.Equal(t, CSSChanged, entry["event_type"])
	require.Equal(t, "events", entry["component"])
	require.EqualValues(t, 2, entry["elements"])
}

func TestBusInvokesSubscribersInOrder(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	var got []string
	bus.Subscribe(Status, func(e Event) error {
		got = append(got, "first:"+e.Payload.(string))
		return errors.New("ignored")
	})
	bus.Subscribe("*", func(e Event) error {
		got = append(got, "any:"+e.Type)
		return nil
	})
	bus.Subscribe(Status, func(e Event) error {
		got = append(got, "second")
		return nil
	})

	bus.Publish(Event{Type: Status, Payload: "saved"})
	bus.Publish(Event{Type: PreviewChanged})

	require.Equal(t, []string{"first:saved", "second", "any:status", "any:preview.changed"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	calls := 0
	sub := bus.Subscribe(SelectionChanged, func(Event) error {
		calls++
		return nil
	})

	bus.Publish(Event{Type: SelectionChanged})
	sub.Unsubscribe()
	sub.Unsubscribe()
	bus.Publish(Event{Type: SelectionChanged})

	require.Equal(t, 1, calls)
}

func TestNilBusIsSafe(t *testing.T) {
	t.Parallel()

	var bus *Bus
	bus.Publish(Event{Type: Status})
	bus.Subscribe(Status, func(Event) error { return nil }).Unsubscribe()
}
