package controllers

import (
	"log"
	"net/http"

	"cityfix-be/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mobile clients send no Origin; CORS is enforced on the REST API instead.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect upgrades the request and hands the connection to the hub.
func (rc *RealtimeController) Connect(c *gin.Context) {
	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[realtime] upgrade failed: %v", err)
		return
	}
	if _, err := rc.hub.Attach(conn); err != nil {
		log.Printf("[realtime] could not attach connection: %v", err)
	}
}
