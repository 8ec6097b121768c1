//go:build !js
// +build !js

// Command server hosts the laserfield page and the plumbing a synced show
// needs: SSE-based WebRTC signaling, an ICE configuration endpoint, and an
// embedded TURN relay for peers behind symmetric NAT.
package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

//go:embed index.html
var indexHTML []byte

// TURN server configuration
var (
	turnRealm    = "laserfield"
	turnUsername = "laserfield"
	turnPassword = "beams-in-the-dark"
)

// SignalMessage represents a WebRTC signaling message.
type SignalMessage struct {
	Type      string          `json:"type"`      // "offer", "answer", "candidate", "join", "leave"
	RoomID    string          `json:"roomId"`    // Show session ID
	PeerID    string          `json:"peerId"`    // Sender's peer ID
	TargetID  string          `json:"targetId"`  // Target peer ID (for direct messages)
	Payload   json.RawMessage `json:"payload"`   // SDP or ICE candidate data
	Timestamp int64           `json:"timestamp"` // Unix timestamp
}

// Peer represents a connected peer in a room.
type Peer struct {
	ID       string
	RoomID   string
	Messages chan []byte
	LastSeen time.Time
	mu       sync.Mutex
}

// Room represents a show session.
type Room struct {
	ID      string
	Peers   map[string]*Peer
	Created time.Time
	mu      sync.RWMutex
}

// SignalingServer manages WebRTC signaling between show peers.
type SignalingServer struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewSignalingServer creates a new signaling server.
func NewSignalingServer() *SignalingServer {
	s := &SignalingServer{
		rooms: make(map[string]*Room),
	}
	go s.cleanup()
	return s
}

// cleanup removes stale peers and empty rooms.
func (s *SignalingServer) cleanup() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for roomID, room := range s.rooms {
			room.mu.Lock()
			for peerID, peer := range room.Peers {
				if time.Since(peer.LastSeen) > 60*time.Second {
					close(peer.Messages)
					delete(room.Peers, peerID)
					log.Printf("Removed stale peer %s from room %s", peerID, roomID)
				}
			}
			if len(room.Peers) == 0 {
				delete(s.rooms, roomID)
				log.Printf("Removed empty room %s", roomID)
			}
			room.mu.Unlock()
		}
		s.mu.Unlock()
	}
}

// GetOrCreateRoom gets or creates a room.
func (s *SignalingServer) GetOrCreateRoom(roomID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	if room, exists := s.rooms[roomID]; exists {
		return room
	}

	room := &Room{
		ID:      roomID,
		Peers:   make(map[string]*Peer),
		Created: time.Now(),
	}
	s.rooms[roomID] = room
	log.Printf("Created room %s", roomID)
	return room
}

// AddPeer adds a peer to a room, replacing any previous peer with the same ID.
func (s *SignalingServer) AddPeer(roomID, peerID string) *Peer {
	room := s.GetOrCreateRoom(roomID)

	room.mu.Lock()
	defer room.mu.Unlock()

	if existing, exists := room.Peers[peerID]; exists {
		close(existing.Messages)
	}

	peer := &Peer{
		ID:       peerID,
		RoomID:   roomID,
		Messages: make(chan []byte, 100),
		LastSeen: time.Now(),
	}
	room.Peers[peerID] = peer
	log.Printf("Peer %s joined room %s", peerID, roomID)

	return peer
}

// RemovePeer removes a peer from a room.
func (s *SignalingServer) RemovePeer(roomID, peerID string) {
	s.mu.RLock()
	room, exists := s.rooms[roomID]
	s.mu.RUnlock()

	if !exists {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if peer, exists := room.Peers[peerID]; exists {
		close(peer.Messages)
		delete(room.Peers, peerID)
		log.Printf("Peer %s left room %s", peerID, roomID)
	}
}

// BroadcastToRoom sends a message to all peers in a room except sender.
func (s *SignalingServer) BroadcastToRoom(roomID, senderID string, msg []byte) {
	s.mu.RLock()
	room, exists := s.rooms[roomID]
	s.mu.RUnlock()

	if !exists {
		return
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	for peerID, peer := range room.Peers {
		if peerID != senderID {
			select {
			case peer.Messages <- msg:
			default:
				log.Printf("Message buffer full for peer %s", peerID)
			}
		}
	}
}

// SendToPeer sends a message to a specific peer.
func (s *SignalingServer) SendToPeer(roomID, targetID string, msg []byte) {
	s.mu.RLock()
	room, exists := s.rooms[roomID]
	s.mu.RUnlock()

	if !exists {
		return
	}

	room.mu.RLock()
	peer, exists := room.Peers[targetID]
	room.mu.RUnlock()

	if exists {
		select {
		case peer.Messages <- msg:
		default:
			log.Printf("Message buffer full for peer %s", targetID)
		}
	}
}

// GetPeersInRoom returns list of peer IDs in a room.
func (s *SignalingServer) GetPeersInRoom(roomID string) []string {
	s.mu.RLock()
	room, exists := s.rooms[roomID]
	s.mu.RUnlock()

	if !exists {
		return nil
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	peers := make([]string, 0, len(room.Peers))
	for peerID := range room.Peers {
		peers = append(peers, peerID)
	}
	return peers
}

// Global signaling server instance
var signaling = NewSignalingServer()

// handleSignaling handles WebRTC signaling via Server-Sent Events (SSE).
func handleSignaling(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	roomID := r.URL.Query().Get("room")
	peerID := r.URL.Query().Get("peer")

	if roomID == "" || peerID == "" {
		http.Error(w, "room and peer query parameters required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		handleSSE(w, r, roomID, peerID)
	case "POST":
		handleSignalPost(w, r, roomID, peerID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSSE streams signaling messages to a peer.
func handleSSE(w http.ResponseWriter, r *http.Request, roomID, peerID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	peer := signaling.AddPeer(roomID, peerID)

	// Send current peers list; the client derives host-ness from it
	peers := signaling.GetPeersInRoom(roomID)
	peersJSON, _ := json.Marshal(map[string]interface{}{
		"type":  "peers",
		"peers": peers,
	})
	fmt.Fprintf(w, "data: %s\n\n", peersJSON)
	flusher.Flush()

	// Notify other peers about new peer
	joinMsg, _ := json.Marshal(SignalMessage{
		Type:      "join",
		RoomID:    roomID,
		PeerID:    peerID,
		Timestamp: time.Now().Unix(),
	})
	signaling.BroadcastToRoom(roomID, peerID, joinMsg)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			signaling.RemovePeer(roomID, peerID)

			leaveMsg, _ := json.Marshal(SignalMessage{
				Type:      "leave",
				RoomID:    roomID,
				PeerID:    peerID,
				Timestamp: time.Now().Unix(),
			})
			signaling.BroadcastToRoom(roomID, peerID, leaveMsg)
			return

		case msg, ok := <-peer.Messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()

			peer.mu.Lock()
			peer.LastSeen = time.Now()
			peer.mu.Unlock()
		}
	}
}

// handleSignalPost routes an incoming signaling message.
func handleSignalPost(w http.ResponseWriter, r *http.Request, roomID, peerID string) {
	var msg SignalMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	msg.RoomID = roomID
	msg.PeerID = peerID
	msg.Timestamp = time.Now().Unix()

	msgBytes, _ := json.Marshal(msg)

	if msg.TargetID != "" {
		signaling.SendToPeer(roomID, msg.TargetID, msgBytes)
	} else {
		signaling.BroadcastToRoom(roomID, peerID, msgBytes)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleRooms returns the list of active rooms.
func handleRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	signaling.mu.RLock()
	defer signaling.mu.RUnlock()

	rooms := make([]map[string]interface{}, 0, len(signaling.rooms))
	for roomID, room := range signaling.rooms {
		room.mu.RLock()
		rooms = append(rooms, map[string]interface{}{
			"id":        roomID,
			"peerCount": len(room.Peers),
			"created":   room.Created.Unix(),
		})
		room.mu.RUnlock()
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"rooms": rooms,
	})
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	turnPort := flag.Int("turn-port", 3478, "TURN server port")
	staticDir := flag.String("static", ".", "Directory to serve static files from")
	publicIP := flag.String("public-ip", "", "Public IP address for TURN server (auto-detected if empty)")
	flag.Parse()

	turnIP := *publicIP
	if turnIP == "" {
		if ip := getOutboundIP(); ip != nil {
			turnIP = ip.String()
		} else {
			turnIP = "127.0.0.1"
		}
	}
	log.Printf("TURN server IP: %s", turnIP)

	go startTURNServer(*turnPort, *publicIP)

	// Serve embedded index.html at root path
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(indexHTML)
			return
		}
		http.FileServer(http.Dir(*staticDir)).ServeHTTP(w, r)
	})

	// WebRTC signaling endpoint
	http.HandleFunc("/api/signal", handleSignaling)

	// Room list endpoint
	http.HandleFunc("/api/rooms", handleRooms)

	// ICE server configuration endpoint (returns TURN credentials)
	http.HandleFunc("/api/ice-servers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		iceServers := map[string]interface{}{
			"iceServers": []interface{}{
				map[string]interface{}{
					"urls": "stun:stun.l.google.com:19302",
				},
				map[string]interface{}{
					"urls": []interface{}{
						fmt.Sprintf("turn:%s:%d", turnIP, *turnPort),
						fmt.Sprintf("turn:%s:%d?transport=tcp", turnIP, *turnPort),
					},
					"username":   turnUsername,
					"credential": turnPassword,
				},
			},
		}

		json.NewEncoder(w).Encode(iceServers)
	})

	// Health check
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Laserfield server starting on http://localhost%s", addr)
	log.Printf("TURN server running on port %d", *turnPort)
	log.Printf("WebRTC signaling endpoint: /api/signal?room=ROOM_ID&peer=PEER_ID")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

// getOutboundIP gets the preferred outbound IP of this machine.
func getOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP
}
