package viz

import "encoding/json"

// Sync constants
const (
	// StateBroadcastInterval is how often the host pushes show state,
	// in milliseconds.
	StateBroadcastInterval = 50 // 20 Hz
)

// SyncMessageType identifies the type of sync message.
type SyncMessageType string

const (
	MsgShowState   SyncMessageType = "state"
	MsgViewerJoin  SyncMessageType = "join"
	MsgViewerLeave SyncMessageType = "leave"
)

// SyncMessage is the base message structure on the data channel.
type SyncMessage struct {
	Type      SyncMessageType `json:"t"`
	PeerID    string          `json:"p"`
	Timestamp int64           `json:"ts"`
	Data      json.RawMessage `json:"d,omitempty"`
}

// ShowState is the compact per-tick state the host broadcasts. Viewers feed
// the smoothed levels straight into their own field.
type ShowState struct {
	Tick    uint32  `json:"t"`
	Playing bool    `json:"p"`
	Bass    float64 `json:"b"`
	Mid     float64 `json:"m"`
}

// Clamped returns a copy with the levels forced into [0,1]. Applied to
// anything that arrives off the wire so the field invariant holds.
func (st ShowState) Clamped() ShowState {
	st.Bass = clamp01(st.Bass)
	st.Mid = clamp01(st.Mid)
	return st
}

// ViewerJoinData announces a peer over a freshly opened data channel.
type ViewerJoinData struct {
	PeerID string `json:"id"`
	IsHost bool   `json:"host"`
}
