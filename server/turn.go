//go:build !js
// +build !js

package main

import (
	"fmt"
	"log"
	"net"

	"github.com/pion/turn/v3"
)

// startTURNServer starts a Pion TURN server for peers whose direct and
// STUN-derived candidates fail.
func startTURNServer(port int, publicIP string) {
	udpListener, err := net.ListenPacket("udp4", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		log.Printf("Failed to create TURN UDP listener: %v", err)
		return
	}

	tcpListener, err := net.Listen("tcp4", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		log.Printf("Failed to create TURN TCP listener: %v", err)
		return
	}

	var relayIP net.IP
	if publicIP != "" {
		relayIP = net.ParseIP(publicIP)
	} else {
		relayIP = getOutboundIP()
	}

	if relayIP == nil {
		log.Printf("Could not determine public IP, TURN relay may not work")
		relayIP = net.ParseIP("127.0.0.1")
	}

	log.Printf("TURN server relay IP: %s", relayIP.String())

	s, err := turn.NewServer(turn.ServerConfig{
		Realm: turnRealm,
		// AuthHandler is called for every TURN allocation
		AuthHandler: func(username, realm string, srcAddr net.Addr) ([]byte, bool) {
			if username == turnUsername {
				return turn.GenerateAuthKey(turnUsername, turnRealm, turnPassword), true
			}
			return nil, false
		},
		PacketConnConfigs: []turn.PacketConnConfig{
			{
				PacketConn: udpListener,
				RelayAddressGenerator: &turn.RelayAddressGeneratorStatic{
					RelayAddress: relayIP,
					Address:      "0.0.0.0",
				},
			},
		},
		ListenerConfigs: []turn.ListenerConfig{
			{
				Listener: tcpListener,
				RelayAddressGenerator: &turn.RelayAddressGeneratorStatic{
					RelayAddress: relayIP,
					Address:      "0.0.0.0",
				},
			},
		},
	})

	if err != nil {
		log.Printf("Failed to start TURN server: %v", err)
		return
	}

	log.Printf("TURN server started on UDP/TCP port %d", port)

	_ = s
}
