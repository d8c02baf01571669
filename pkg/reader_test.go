package evtfilter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventLines = `{"evt_number": 1, "det1": [[1, 11.0, 1, 100]], "det2": [[11, 20.5, 11, 102]], "energy": 31.5, "x": 1, "y": 2}

{"evt_number": 2, "det1": [[2, 5.0, 2]], "det2": [], "energy": 5}
{"evt_number": 3, "det1": [], "det2": [], "energy": 0}
`

func readAll(t *testing.T, reader *EventReader) []Event {
	var events []Event
	for {
		event, err := reader.NextEvent()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, event)
	}
}

func TestEventReader(t *testing.T) {
	events := readAll(t, NewEventReader(strings.NewReader(eventLines), 0, 0))
	require.Len(t, events, 3)

	assert.Equal(t, Event{
		EventID: 1,
		Det1:    []Hit{{Channel: 1, Value: 11, Ref: 1, Time: 100}},
		Det2:    []Hit{{Channel: 11, Value: 20.5, Ref: 11, Time: 102}},
		Energy:  31.5,
		X:       1,
		Y:       2,
	}, events[0])
	assert.Equal(t, uint32(2), events[1].EventID)
	assert.Empty(t, events[1].Det2)
}

func TestEventReaderSkipAndMaxEvents(t *testing.T) {
	events := readAll(t, NewEventReader(strings.NewReader(eventLines), 1, 0))
	require.Len(t, events, 2)
	assert.Equal(t, uint32(2), events[0].EventID)

	events = readAll(t, NewEventReader(strings.NewReader(eventLines), 1, 2))
	require.Len(t, events, 1)
	assert.Equal(t, uint32(2), events[0].EventID)
}

func TestEventReaderParseError(t *testing.T) {
	input := eventLines + `{"evt_number": 4, "det1": [[1, 2]]}` + "\n"
	reader := NewEventReader(strings.NewReader(input), 0, 0)
	for i := 0; i < 3; i++ {
		_, err := reader.NextEvent()
		require.NoError(t, err)
	}
	_, err := reader.NextEvent()
	var parseErr *ErrParseEvent
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 5, parseErr.Line)
}
