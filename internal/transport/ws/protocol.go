package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/ytshorts/internal/types"
)

// Inbound event names.
const (
	EventProcessVideo = "process-video"
)

// Frame is the envelope of every message in either direction.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// DonePayload is the data of a done frame.
type DonePayload struct {
	Video      string `json:"video"`
	Transcript string `json:"transcript"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var errMissingRequestField = errors.New("url, start and end are required")

func decodeFrame(raw []byte) (inboundFrame, error) {
	var f inboundFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return inboundFrame{}, fmt.Errorf("malformed frame: %w", err)
	}
	if f.Event == "" {
		return inboundFrame{}, errors.New("malformed frame: missing event")
	}
	return f, nil
}

func decodeRequest(data json.RawMessage) (types.Request, error) {
	var req types.Request
	if len(data) == 0 {
		return req, fmt.Errorf("invalid %s payload: %w", EventProcessVideo, errMissingRequestField)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid %s payload: %w", EventProcessVideo, err)
	}
	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return req, fmt.Errorf("invalid %s payload: %w", EventProcessVideo, errMissingRequestField)
	}
	return req, nil
}

func frameFor(e types.Event) Frame {
	switch e.Kind {
	case types.EventTranscript:
		return Frame{Event: string(e.Kind), Data: e.Transcript}
	case types.EventDone:
		return Frame{Event: string(e.Kind), Data: DonePayload{Video: e.Video, Transcript: e.Transcript}}
	default:
		return Frame{Event: string(e.Kind), Data: e.Message}
	}
}

func errorFrame(err error) Frame {
	return Frame{Event: string(types.EventError), Data: err.Error()}
}
