// Package main runs a demo WebSocket client that plays back one vehicle route.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Vehicle string          `json:"vehicle,omitempty"`
	Frame   int             `json:"frame,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	vehicle := flag.String("vehicle", "", "vehicle to play back (default: first in /v1/vehicles)")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	if *vehicle == "" {
		resp, err := http.Get(base + "/v1/vehicles")
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = resp.Body.Close() }()
		var idx struct {
			Default string `json:"default"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&idx); err != nil {
			log.Fatal(err)
		}
		if idx.Default == "" {
			log.Fatal("no vehicles returned")
		}
		*vehicle = idx.Default
	}
	log.Printf("Vehicle: %s", *vehicle)

	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/playback/ws"}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.WriteJSON(wsMessage{Type: "select", Vehicle: *vehicle}); err != nil {
		log.Fatal(err)
	}
	if err := c.WriteJSON(wsMessage{Type: "play"}); err != nil {
		log.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m wsMessage
			if err := c.ReadJSON(&m); err != nil {
				log.Printf("read: %v", err)
				return
			}
			switch m.Type {
			case "figure":
				log.Printf("WS <- figure (%d bytes)", len(m.Payload))
			case "done":
				log.Printf("WS <- done")
				return
			default:
				log.Printf("WS <- %s: %s", m.Type, string(m.Payload))
			}
		}
	}()

	select {
	case <-time.After(30 * time.Second):
	case <-done:
	}
}
