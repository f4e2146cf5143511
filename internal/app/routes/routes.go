package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/communia/internal/app/controllers"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	communityController *controllers.CommunityController,
	chatController *controllers.ChatController,
	eventController *controllers.EventController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
	apiKey string,
) {
	// Public liveness page outside the API key gate
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "communia is up")
	})

	// Everything under /api requires the shared API key
	api := router.Group("/api")
	api.Use(middleware.APIKeyMiddleware(apiKey))

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})

	// --- User routes ---
	users := api.Group("/users")
	{
		users.POST("/register", userController.Register)
		users.POST("/login", userController.Login)
		users.GET("/user", authMiddleware.Authenticate(), userController.GetUser)
	}

	// --- Community routes ---
	communities := api.Group("/communities")
	{
		communities.GET("", communityController.ListCommunities)
		communities.GET("/search", communityController.SearchCommunities)
		communities.POST("/create", authMiddleware.Authenticate(), communityController.CreateCommunity)
		communities.POST("/join/:id", authMiddleware.Authenticate(), communityController.JoinCommunity)
		communities.POST("/leave/:id", authMiddleware.Authenticate(), communityController.LeaveCommunity)
		communities.POST("/removeMember", authMiddleware.Authenticate(), communityController.RemoveMember)
		communities.DELETE("/delete/:id", communityController.DeleteCommunity)
	}

	// --- Chat routes (all authenticated) ---
	chats := api.Group("/chat")
	chats.Use(authMiddleware.Authenticate())
	{
		chats.POST("/create", chatController.CreateChat)
		chats.DELETE("/delete/:chatId", chatController.DeleteChat)
		chats.PUT("/addUsers/:chatId", chatController.AddUsers)
		chats.PUT("/removeUsers/:chatId", chatController.RemoveUsers)
		chats.GET("/:chatId", chatController.GetChat)
	}

	// --- Message routes ---
	messages := api.Group("/message")
	messages.Use(authMiddleware.Authenticate())
	{
		messages.PUT("/add", messageController.AddMessage)
	}

	// --- Event routes ---
	events := api.Group("/events")
	{
		events.POST("/create", authMiddleware.Authenticate(), eventController.CreateEvent)
		events.GET("/:id", eventController.GetEvent)
		events.GET("/:id/all", eventController.ListCommunityEvents)
		events.DELETE("/delete/:id", authMiddleware.Authenticate(), eventController.DeleteEvent)
	}
}
