//go:build js
// +build js

package viz

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gopherjs/gopherjs/js"
)

// SyncManager shares a running show between browsers. The first peer in a
// room becomes the host and broadcasts its smoothed levels over WebRTC data
// channels; later peers render as viewers from the received state.
type SyncManager struct {
	viz    *Visualizer
	peerID string
	roomID string
	isHost bool

	connected bool

	// Connections
	peers     map[string]*PeerConnection
	signaling *js.Object // EventSource for signaling

	// ICE configuration (fetched from server)
	iceConfig map[string]interface{}

	// State
	tick          uint32
	lastStateSent float64
	latestState   ShowState
}

// PeerConnection wraps a WebRTC peer connection.
type PeerConnection struct {
	ID                string
	conn              *js.Object // RTCPeerConnection
	dataChannel       *js.Object // RTCDataChannel
	isConnected       bool
	remoteDescSet     bool
	pendingCandidates []map[string]interface{} // Buffered until remote desc set
}

// NewSyncManager creates a sync manager for the visualizer. No network
// activity happens until JoinRoom.
func NewSyncManager(v *Visualizer) *SyncManager {
	return &SyncManager{
		viz:   v,
		peers: make(map[string]*PeerConnection),
	}
}

// Hosting reports whether this peer drives a synced room.
func (sm *SyncManager) Hosting() bool {
	return sm.connected && sm.isHost
}

// Viewing reports whether this peer follows a remote host.
func (sm *SyncManager) Viewing() bool {
	return sm.connected && !sm.isHost
}

// PeerCount returns the number of connected peers.
func (sm *SyncManager) PeerCount() int {
	count := 0
	for _, p := range sm.peers {
		if p.isConnected {
			count++
		}
	}
	return count
}

// LatestState returns the most recently received show state.
func (sm *SyncManager) LatestState() ShowState {
	return sm.latestState
}

// GeneratePeerID creates a random peer ID.
func GeneratePeerID() string {
	chars := "abcdefghijklmnopqrstuvwxyz0123456789"
	id := make([]byte, 8)
	for i := range id {
		id[i] = chars[int(js.Global.Get("Math").Call("random").Float()*float64(len(chars)))]
	}
	return string(id)
}

// JoinRoom connects to a sync room via the signaling server.
func (sm *SyncManager) JoinRoom(roomID string) {
	sm.roomID = roomID
	sm.peerID = GeneratePeerID()
	sm.fetchICEConfig()

	url := "/api/signal?room=" + roomID + "&peer=" + sm.peerID
	sm.signaling = js.Global.Get("EventSource").New(url)

	sm.signaling.Set("onmessage", func(event *js.Object) {
		sm.handleSignalingMessage(event.Get("data").String())
	})

	sm.signaling.Set("onerror", func(event *js.Object) {
		DebugWarn("Signaling connection error")
		sm.connected = false
	})

	sm.signaling.Set("onopen", func(event *js.Object) {
		Debug("Connected to signaling server")
	})
}

// LeaveRoom disconnects from the room and all peers.
func (sm *SyncManager) LeaveRoom() {
	for peerID := range sm.peers {
		sm.removePeer(peerID)
	}
	if sm.signaling != nil {
		sm.signaling.Call("close")
		sm.signaling = nil
	}
	sm.connected = false
	sm.isHost = false
}

// fetchICEConfig retrieves ICE server configuration from the server.
func (sm *SyncManager) fetchICEConfig() {
	xhr := js.Global.Get("XMLHttpRequest").New()
	xhr.Call("open", "GET", "/api/ice-servers", false) // synchronous
	xhr.Call("send")

	if xhr.Get("status").Int() == 200 {
		var config map[string]interface{}
		if err := json.Unmarshal([]byte(xhr.Get("responseText").String()), &config); err == nil {
			sm.iceConfig = config
			return
		}
	}

	DebugWarn("Using default ICE config")
	sm.iceConfig = map[string]interface{}{
		"iceServers": []interface{}{
			map[string]interface{}{
				"urls": "stun:stun.l.google.com:19302",
			},
		},
	}
}

// handleSignalingMessage processes messages from the signaling server.
func (sm *SyncManager) handleSignalingMessage(data string) {
	var msg map[string]interface{}
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		DebugWarn("Failed to parse signaling message: " + err.Error())
		return
	}

	msgType, _ := msg["type"].(string)
	Debug("Signaling message received: " + msgType)

	switch msgType {
	case "peers":
		// Initial peer list - we're the host if we're the only one
		peers, _ := msg["peers"].([]interface{})
		sm.isHost = len(peers) == 1
		if sm.isHost {
			Debug("We are the host")
		}
		for _, p := range peers {
			peerID, _ := p.(string)
			if peerID != sm.peerID {
				sm.createPeerConnection(peerID, true)
			}
		}
		sm.connected = true

	case "join":
		// New peer joined - they will send the offer
		peerID, _ := msg["peerId"].(string)
		if peerID != sm.peerID {
			Debug("Peer joined: " + peerID)
			sm.createPeerConnection(peerID, false)
		}

	case "leave":
		peerID, _ := msg["peerId"].(string)
		sm.removePeer(peerID)

	case "offer":
		sm.handleOffer(msg)

	case "answer":
		sm.handleAnswer(msg)

	case "candidate":
		sm.handleCandidate(msg)
	}
}

// createPeerConnection creates a new WebRTC connection to a peer.
func (sm *SyncManager) createPeerConnection(peerID string, initiator bool) {
	pc := js.Global.Get("RTCPeerConnection").New(sm.iceConfig)

	peer := &PeerConnection{
		ID:   peerID,
		conn: pc,
	}
	sm.peers[peerID] = peer

	pc.Set("onicecandidate", func(event *js.Object) {
		candidate := event.Get("candidate")
		if candidate == nil || candidate == js.Undefined {
			Debug("ICE gathering complete")
			return
		}

		candidateJSON := candidate.Call("toJSON")
		payload := map[string]interface{}{
			"candidate":     candidateJSON.Get("candidate").String(),
			"sdpMid":        candidateJSON.Get("sdpMid").String(),
			"sdpMLineIndex": candidateJSON.Get("sdpMLineIndex").Int(),
		}
		if uf := candidateJSON.Get("usernameFragment"); uf != nil && uf != js.Undefined {
			payload["usernameFragment"] = uf.String()
		}

		sm.sendSignaling(map[string]interface{}{
			"type":     "candidate",
			"targetId": peerID,
			"payload":  payload,
		})
	})

	pc.Set("onconnectionstatechange", func() {
		state := pc.Get("connectionState").String()
		Debug("Connection to " + peerID + ": " + state)
		peer.isConnected = state == "connected"
	})

	pc.Set("ondatachannel", func(event *js.Object) {
		sm.setupDataChannel(peer, event.Get("channel"))
	})

	if initiator {
		channel := pc.Call("createDataChannel", "show", map[string]interface{}{
			"ordered": false, // Unreliable for low latency; state is idempotent
		})
		sm.setupDataChannel(peer, channel)

		pc.Call("createOffer").Call("then", func(offer *js.Object) {
			pc.Call("setLocalDescription", offer).Call("then", func() {
				sm.sendSignaling(map[string]interface{}{
					"type":     "offer",
					"targetId": peerID,
					"payload": map[string]interface{}{
						"type": offer.Get("type").String(),
						"sdp":  offer.Get("sdp").String(),
					},
				})
			})
		})
	}
}

// setupDataChannel configures a data channel for show messages.
func (sm *SyncManager) setupDataChannel(peer *PeerConnection, channel *js.Object) {
	peer.dataChannel = channel

	channel.Set("onopen", func() {
		Debug("Data channel open to " + peer.ID)
		peer.isConnected = true

		joinData, _ := json.Marshal(ViewerJoinData{
			PeerID: sm.peerID,
			IsHost: sm.isHost,
		})
		sm.sendTo(peer.ID, &SyncMessage{
			Type:      MsgViewerJoin,
			PeerID:    sm.peerID,
			Timestamp: time.Now().UnixMilli(),
			Data:      joinData,
		})
	})

	channel.Set("onclose", func() {
		Debug("Data channel closed to " + peer.ID)
		peer.isConnected = false
	})

	channel.Set("onmessage", func(event *js.Object) {
		sm.handleShowMessage(peer.ID, event.Get("data").String())
	})
}

// handleOffer processes an SDP offer from a peer.
func (sm *SyncManager) handleOffer(msg map[string]interface{}) {
	peerID, _ := msg["peerId"].(string)
	payload, _ := msg["payload"].(map[string]interface{})

	peer, exists := sm.peers[peerID]
	if !exists {
		sm.createPeerConnection(peerID, false)
		peer = sm.peers[peerID]
	}

	sdp := map[string]interface{}{
		"type": payload["type"],
		"sdp":  payload["sdp"],
	}

	peer.conn.Call("setRemoteDescription", sdp).Call("then", func() {
		peer.remoteDescSet = true
		sm.processPendingCandidates(peer)

		peer.conn.Call("createAnswer").Call("then", func(answer *js.Object) {
			peer.conn.Call("setLocalDescription", answer).Call("then", func() {
				sm.sendSignaling(map[string]interface{}{
					"type":     "answer",
					"targetId": peerID,
					"payload": map[string]interface{}{
						"type": answer.Get("type").String(),
						"sdp":  answer.Get("sdp").String(),
					},
				})
			})
		})
	}).Call("catch", func(err *js.Object) {
		DebugError("Error setting remote description: " + err.Call("toString").String())
	})
}

// handleAnswer processes an SDP answer from a peer.
func (sm *SyncManager) handleAnswer(msg map[string]interface{}) {
	peerID, _ := msg["peerId"].(string)
	payload, _ := msg["payload"].(map[string]interface{})

	peer, exists := sm.peers[peerID]
	if !exists {
		DebugWarn("No peer connection for " + peerID)
		return
	}

	sdp := map[string]interface{}{
		"type": payload["type"],
		"sdp":  payload["sdp"],
	}

	peer.conn.Call("setRemoteDescription", sdp).Call("then", func() {
		peer.remoteDescSet = true
		sm.processPendingCandidates(peer)
	}).Call("catch", func(err *js.Object) {
		DebugError("Error setting answer: " + err.Call("toString").String())
	})
}

// handleCandidate processes an ICE candidate from a peer.
func (sm *SyncManager) handleCandidate(msg map[string]interface{}) {
	peerID, _ := msg["peerId"].(string)
	payload, _ := msg["payload"].(map[string]interface{})

	peer, exists := sm.peers[peerID]
	if !exists {
		DebugWarn("Received candidate but no peer for " + peerID)
		return
	}

	if !peer.remoteDescSet {
		peer.pendingCandidates = append(peer.pendingCandidates, payload)
		return
	}

	sm.addIceCandidate(peer, payload)
}

// processPendingCandidates adds buffered candidates once the remote
// description is set.
func (sm *SyncManager) processPendingCandidates(peer *PeerConnection) {
	if len(peer.pendingCandidates) == 0 {
		return
	}
	Debug("Processing " + strconv.Itoa(len(peer.pendingCandidates)) + " buffered candidates for " + peer.ID)
	for _, candidate := range peer.pendingCandidates {
		sm.addIceCandidate(peer, candidate)
	}
	peer.pendingCandidates = nil
}

// addIceCandidate adds a single ICE candidate to the peer connection.
func (sm *SyncManager) addIceCandidate(peer *PeerConnection, payload map[string]interface{}) {
	peer.conn.Call("addIceCandidate", payload).Call("catch", func(err *js.Object) {
		DebugError("Error adding ICE candidate: " + err.Call("toString").String())
	})
}

// removePeer cleans up a disconnected peer.
func (sm *SyncManager) removePeer(peerID string) {
	peer, exists := sm.peers[peerID]
	if !exists {
		return
	}

	if peer.dataChannel != nil {
		peer.dataChannel.Call("close")
	}
	if peer.conn != nil {
		peer.conn.Call("close")
	}

	delete(sm.peers, peerID)
	Debug("Removed peer: " + peerID)
}

// sendSignaling sends a message via the signaling server.
func (sm *SyncManager) sendSignaling(msg map[string]interface{}) {
	data, _ := json.Marshal(msg)

	js.Global.Call("fetch", "/api/signal?room="+sm.roomID+"&peer="+sm.peerID, map[string]interface{}{
		"method": "POST",
		"headers": map[string]interface{}{
			"Content-Type": "application/json",
		},
		"body": string(data),
	})
}

// broadcast sends a show message to all connected peers.
func (sm *SyncManager) broadcast(msg *SyncMessage) {
	data, _ := json.Marshal(msg)
	dataStr := string(data)

	for _, peer := range sm.peers {
		if peer.isConnected && peer.dataChannel != nil {
			peer.dataChannel.Call("send", dataStr)
		}
	}
}

// sendTo sends a show message to a specific peer.
func (sm *SyncManager) sendTo(peerID string, msg *SyncMessage) {
	peer, exists := sm.peers[peerID]
	if !exists || !peer.isConnected || peer.dataChannel == nil {
		return
	}

	data, _ := json.Marshal(msg)
	peer.dataChannel.Call("send", string(data))
}

// MaybeBroadcast pushes the current show state to viewers at the broadcast
// interval. Called once per frame on the host.
func (sm *SyncManager) MaybeBroadcast(now float64, f *Field, playing bool) {
	if now-sm.lastStateSent < StateBroadcastInterval {
		return
	}
	sm.lastStateSent = now
	sm.tick++

	stateData, _ := json.Marshal(ShowState{
		Tick:    sm.tick,
		Playing: playing,
		Bass:    f.SmoothedBass,
		Mid:     f.SmoothedMid,
	})
	sm.broadcast(&SyncMessage{
		Type:      MsgShowState,
		PeerID:    sm.peerID,
		Timestamp: time.Now().UnixMilli(),
		Data:      stateData,
	})
}

// handleShowMessage processes a show message from a peer.
func (sm *SyncManager) handleShowMessage(peerID string, data string) {
	var msg SyncMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return
	}

	switch msg.Type {
	case MsgShowState:
		if sm.isHost {
			return
		}
		var st ShowState
		if err := json.Unmarshal(msg.Data, &st); err != nil {
			return
		}
		// Unordered channel: drop anything older than what we have
		if st.Tick > sm.latestState.Tick {
			sm.latestState = st.Clamped()
		}

	case MsgViewerJoin:
		var join ViewerJoinData
		if err := json.Unmarshal(msg.Data, &join); err != nil {
			return
		}
		Debug("Peer announced: " + join.PeerID)

	case MsgViewerLeave:
		sm.removePeer(peerID)
	}
}
