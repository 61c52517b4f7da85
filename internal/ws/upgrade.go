package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"roomops/internal/reconcile"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeDashboardWS upgrades a dashboard connection: the client first
// receives a snapshot of today's room mirror, then the raw feed event
// stream.
func UpgradeDashboardWS(hub *Hub, rooms *reconcile.RoomList) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := &Client{Send: make(chan []byte, 256)}
		hub.Register(client)
		defer client.Close()

		snapshot, _ := json.Marshal(map[string]interface{}{
			"type":  "snapshot",
			"rooms": rooms.Snapshot(),
		})
		client.Send <- snapshot

		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies messages from client.Send to the connection, pinging to
// keep intermediaries from dropping idle connections.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
