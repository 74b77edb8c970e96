package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"

	"kindred_server/realtime"
)

// NewSocketServer initializes the Socket.IO server. Clients join one room
// per match; every hub publish for that match is broadcast to the room.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("Invalid matchId in join request")
			return
		}
		c.Join(matchID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, matchID string) {
		if matchID != "" {
			c.Leave(matchID)
		}
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}

// Forwarder adapts the server into a realtime.Hub forwarder: hub topics
// become per-match room broadcasts ("messages", "meetups", "match").
func Forwarder(server *socketio.Server) func(topic string, payload interface{}) {
	return func(topic string, payload interface{}) {
		kind, matchID := realtime.SplitTopic(topic)
		if matchID == "" {
			return
		}
		server.BroadcastToRoom("/", matchID, kind, payload)
	}
}
