package evtfilter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const maxLineSize = 16 * 1024 * 1024

// EventReader reads one JSON encoded event per line.
type EventReader struct {
	scanner   *bufio.Scanner
	line      int
	EvtCount  int
	Skip      int
	MaxEvents int
}

func NewEventReader(r io.Reader, skip int, maxEvents int) *EventReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &EventReader{scanner: scanner, EvtCount: -1, Skip: skip, MaxEvents: maxEvents}
}

// NextEvent returns io.EOF once the input or MaxEvents is exhausted.
func (r *EventReader) NextEvent() (Event, error) {
	for {
		data, err := r.nextLine()
		if err != nil {
			return Event{}, err
		}
		r.EvtCount++
		if r.MaxEvents > 0 && r.EvtCount >= r.MaxEvents {
			if configuration.Verbosity > 0 {
				logger.Info("Max events reached", "eventReader")
			}
			return Event{}, io.EOF
		}
		if r.EvtCount < r.Skip {
			if configuration.Verbosity > 1 {
				message := fmt.Sprintf("Skipping event %d", r.EvtCount)
				logger.Info(message, "eventReader")
			}
			continue
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			return Event{}, &ErrParseEvent{Line: r.line, Err: err}
		}
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Reading event %d with ID %d", r.EvtCount, event.EventID)
			logger.Info(message, "eventReader")
		}
		return event, nil
	}
}

// nextLine skips blank lines.
func (r *EventReader) nextLine() ([]byte, error) {
	for r.scanner.Scan() {
		r.line++
		data := bytes.TrimSpace(r.scanner.Bytes())
		if len(data) > 0 {
			return data, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}
	return nil, io.EOF
}
