package router

import (
	"context"

	"alumni_network_service/internal/chat/app"
	"alumni_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	fiberswagger "github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wires the chat routes. Everything except the swagger UI
// sits behind the JWT middleware, so the websocket handler sees the verified
// user id in Locals before the upgrade.
func RegisterRoutes(r *fiber.App, sessions middlewares.SessionChecker, chatWebsocket *app.ChatWebsocketHandler, chatRest *app.ChatRestHandler) {
	r.Get("/swagger/*", fiberswagger.HandlerDefault)

	r.Use(middlewares.JWTMiddleware(sessions))

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	api := r.Group("/api")
	api.Post("/messages", chatRest.SendMessage)
	api.Get("/messages", chatRest.ListMessages)
	api.Get("/messages/conversation/:userId", chatRest.Conversation)
	api.Patch("/messages/:id/read", chatRest.MarkRead)
	api.Get("/users/:id", chatRest.GetUser)
}
