package routes

import (
	"backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Devices       *controllers.DeviceController
	Notifications *controllers.NotificationController
	Activity      *controllers.ActivityController
}

func SetupRouter(c Controllers, authRequired gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", c.Auth.SignUp)
		auth.POST("/signin", c.Auth.SignIn)
		auth.POST("/google", c.Auth.GoogleSignIn)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Protected session routes
	session := r.Group("/auth")
	session.Use(authRequired)
	{
		session.POST("/signout", c.Auth.SignOut)
		session.POST("/reauthenticate", c.Auth.Reauthenticate)
		session.POST("/change-password", c.Auth.ChangePassword)
		session.POST("/delete-account", c.Auth.DeleteAccount)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(authRequired)
	{
		user.GET("/profile", c.Users.GetProfile)
		user.PATCH("/profile", c.Users.UpdateProfile)
		user.GET("/streaks", c.Users.GetStreaks)
		user.POST("/notifications/toggle", c.Notifications.Toggle)
		user.POST("/devices", c.Devices.Register)
	}

	// App-state transitions from the mobile client
	activity := r.Group("/activity")
	activity.Use(authRequired)
	{
		activity.POST("/foreground", c.Activity.Foreground)
		activity.POST("/background", c.Activity.Background)
	}

	return r
}
