// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "workspace_backend/internal/feature/auth/transport/handler"
	clienthandler "workspace_backend/internal/feature/clients/transport/handler"
	filehandler "workspace_backend/internal/feature/files/transport/handler"
	invhandler "workspace_backend/internal/feature/invitation/transport/handler"
	projecthandler "workspace_backend/internal/feature/projects/transport/handler"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	"workspace_backend/internal/platform/http/handler"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Workspace  *wshandler.WorkspaceHandler
	Invitation *invhandler.InvitationHandler
	Client     *clienthandler.ClientHandler
	Project    *projecthandler.ProjectHandler
	File       *filehandler.FileHandler
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", handler.Health)

	// Account lifecycle, no bearer token required.
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)
	r.POST("/verify-email", h.Auth.VerifyEmail)
	r.POST("/forgot-password", h.Auth.ForgotPassword)
	r.POST("/reset-password", h.Auth.ResetPassword)

	// Accept works for anonymous callers too: it tells them whether to
	// log in or register. A valid bearer token is bound when present.
	r.POST("/invitations/accept", jwtmw.OptionalAuth(), h.Invitation.Accept)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/resend-verification", h.Auth.ResendVerification)

		auth.GET("/workspaces", h.Workspace.List)
		auth.POST("/workspaces", h.Workspace.Create)
		auth.GET("/workspaces/:id", h.Workspace.Get)
		auth.PUT("/workspaces/:id", h.Workspace.Update)

		auth.GET("/workspaces/:id/invitations", h.Invitation.List)
		auth.POST("/workspaces/:id/invitations", h.Invitation.Create)
		auth.DELETE("/workspaces/:id/invitations/:invitationID", h.Invitation.Cancel)
		auth.POST("/workspaces/:id/invitations/:invitationID/resend", h.Invitation.Resend)

		auth.GET("/workspaces/:id/clients", h.Client.List)
		auth.POST("/workspaces/:id/clients", h.Client.Create)
		auth.GET("/workspaces/:id/clients/:clientID", h.Client.Get)
		auth.PUT("/workspaces/:id/clients/:clientID", h.Client.Update)
		auth.DELETE("/workspaces/:id/clients/:clientID", h.Client.Delete)

		auth.GET("/workspaces/:id/projects", h.Project.List)
		auth.POST("/workspaces/:id/projects", h.Project.Create)
		auth.GET("/workspaces/:id/projects/:projectID", h.Project.Get)
		auth.PUT("/workspaces/:id/projects/:projectID", h.Project.Update)
		auth.DELETE("/workspaces/:id/projects/:projectID", h.Project.Delete)

		auth.GET("/workspaces/:id/files", h.File.List)
		auth.POST("/workspaces/:id/files", h.File.Upload)
		auth.DELETE("/workspaces/:id/files/:fileID", h.File.Delete)
	}

	return r
}
