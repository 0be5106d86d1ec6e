package rest

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/infrastructure/backend"
	"github.com/supanut9/store-it/internal/interface/api/rest/dto/user"
	"github.com/supanut9/store-it/internal/interface/api/rest/middleware"
)

const initialsSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">` +
	`<rect width="128" height="128" fill="#FA7275"/>` +
	`<text x="50%%" y="50%%" dy=".35em" text-anchor="middle" font-family="Poppins, sans-serif" font-size="52" fill="#FFFFFF">%s</text>` +
	`</svg>`

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	session gin.HandlerFunc,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteMe, session, uc.GetCurrentUserHandler)
	r.GET(RouteInitials, uc.GetInitialsHandler)

	return uc
}

func (uc *UserController) GetCurrentUserHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u, uc.userService.AvatarURL(u)))
}

func (uc *UserController) GetInitialsHandler(c *gin.Context) {
	initials := backend.Initials(c.Query("name"))
	if initials == "" {
		initials = "?"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(fmt.Sprintf(initialsSVG, html.EscapeString(initials))))
}
