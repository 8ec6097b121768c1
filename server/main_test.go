//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSignalingServer_AddRemovePeer(t *testing.T) {
	s := NewSignalingServer()

	s.AddPeer("show1", "alice")
	s.AddPeer("show1", "bob")

	peers := s.GetPeersInRoom("show1")
	if len(peers) != 2 {
		t.Fatalf("Expected 2 peers, got %d", len(peers))
	}

	s.RemovePeer("show1", "alice")
	peers = s.GetPeersInRoom("show1")
	if len(peers) != 1 || peers[0] != "bob" {
		t.Errorf("Expected only bob left, got %v", peers)
	}

	if s.GetPeersInRoom("no-such-room") != nil {
		t.Error("Expected nil peer list for unknown room")
	}
}

func TestSignalingServer_RejoinReplacesPeer(t *testing.T) {
	s := NewSignalingServer()

	first := s.AddPeer("show1", "alice")
	second := s.AddPeer("show1", "alice")

	// The first connection's channel is closed so its SSE loop exits
	select {
	case _, ok := <-first.Messages:
		if ok {
			t.Error("Expected closed channel, got a message")
		}
	case <-time.After(time.Second):
		t.Error("Expected first peer channel to be closed")
	}

	if len(s.GetPeersInRoom("show1")) != 1 {
		t.Errorf("Expected 1 peer after rejoin, got %d", len(s.GetPeersInRoom("show1")))
	}

	s.SendToPeer("show1", "alice", []byte("hi"))
	select {
	case msg := <-second.Messages:
		if string(msg) != "hi" {
			t.Errorf("Expected 'hi', got %q", msg)
		}
	case <-time.After(time.Second):
		t.Error("Expected replacement peer to receive the message")
	}
}

func TestSignalingServer_BroadcastSkipsSender(t *testing.T) {
	s := NewSignalingServer()

	alice := s.AddPeer("show1", "alice")
	bob := s.AddPeer("show1", "bob")

	s.BroadcastToRoom("show1", "alice", []byte("offer"))

	select {
	case msg := <-bob.Messages:
		if string(msg) != "offer" {
			t.Errorf("Expected 'offer', got %q", msg)
		}
	case <-time.After(time.Second):
		t.Error("Expected bob to receive the broadcast")
	}

	select {
	case msg := <-alice.Messages:
		t.Errorf("Sender must not receive its own broadcast, got %q", msg)
	default:
	}
}

func TestHandleSignaling_RequiresRoomAndPeer(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/signal", nil)
	w := httptest.NewRecorder()

	handleSignaling(w, req)
	if w.Code != 400 {
		t.Errorf("Expected 400 without room/peer params, got %d", w.Code)
	}
}

func TestHandleSignalPost_RoutesDirectMessage(t *testing.T) {
	// handleSignalPost goes through the package-level server
	target := signaling.AddPeer("post-room", "target")
	defer signaling.RemovePeer("post-room", "target")
	defer signaling.RemovePeer("post-room", "sender")

	body := strings.NewReader(`{"type":"offer","targetId":"target","payload":{"sdp":"x"}}`)
	req := httptest.NewRequest("POST", "/api/signal?room=post-room&peer=sender", body)
	w := httptest.NewRecorder()

	handleSignaling(w, req)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	select {
	case raw := <-target.Messages:
		var msg SignalMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != "offer" || msg.PeerID != "sender" || msg.RoomID != "post-room" {
			t.Errorf("Unexpected routed message: %+v", msg)
		}
	case <-time.After(time.Second):
		t.Error("Expected target to receive the routed offer")
	}
}
