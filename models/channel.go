package models

import "encoding/json"

// Message types sent by the server over the real-time channel.
const (
	// MessageTypeDataChanged signals that the shared Document was replaced.
	// Carries the new version only; clients follow up with their own GET.
	MessageTypeDataChanged = "data-changed"

	// MessageTypeAck confirms a write submitted over the channel itself.
	MessageTypeAck = "ack"

	// MessageTypeError reports a rejected channel request.
	MessageTypeError = "error"
)

// ChannelActionPut is the only client → server action on the channel: a full
// Document replacement, equivalent to PUT /data.
const ChannelActionPut = "put"

// ChannelMessage is a server → client frame on the broadcast channel.
type ChannelMessage struct {
	Type    string `json:"type"`
	Version int64  `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// ChannelRequest is a client → server frame on the broadcast channel.
type ChannelRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}
