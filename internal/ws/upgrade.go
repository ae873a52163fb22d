package ws

import (
	"net/http"
	"time"

	"gamoiwere/config"
	"gamoiwere/internal/auth"

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

type authFrame struct {
	Type   string `json:"type"`
	UserID uint   `json:"userId"`
	Token  string `json:"token"`
}

// UpgradeNotificationWS upgrades the /ws connection. The first client frame
// must be {"type":"auth","userId":N}; a token, when supplied, is validated
// and wins over the claimed user id.
func UpgradeNotificationWS(cfg *config.JWTConfig, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		var frame authFrame
		if err := conn.ReadJSON(&frame); err != nil || frame.Type != "auth" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"auth frame required"}`))
			return
		}
		userID := frame.UserID
		if frame.Token != "" {
			claims, err := auth.ParseAccessToken(cfg, frame.Token)
			if err != nil {
				conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
				return
			}
			userID = claims.UserID
		}
		if userID == 0 {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"userId required"}`))
			return
		}
		conn.SetReadDeadline(time.Time{})

		client := &Client{
			UserID: userID,
			Send:   make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()
		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies messages from client.Send to the connection.
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
