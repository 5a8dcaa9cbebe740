package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type SignUpInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	DisplayName  string `json:"displayName" binding:"required"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
	PushToken    string `json:"pushToken"`
	Platform     string `json:"platform"`
}

func (ac *AuthController) SignUp(c *gin.Context) {
	var input SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Auth.SignUp(c.Request.Context(), services.SignUpInput{
		Email:        input.Email,
		Password:     input.Password,
		DisplayName:  input.DisplayName,
		Username:     input.Username,
		ProfileImage: input.ProfileImage,
		PushToken:    input.PushToken,
		Platform:     input.Platform,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": result.Token, "user": result.User})
}

type SignInInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	PushToken string `json:"pushToken"`
	Platform  string `json:"platform"`
}

func (ac *AuthController) SignIn(c *gin.Context) {
	var input SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Auth.SignIn(c.Request.Context(), input.Email, input.Password, input.PushToken, input.Platform)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

type GoogleSignInInput struct {
	IDToken   string `json:"idToken" binding:"required"`
	PushToken string `json:"pushToken"`
	Platform  string `json:"platform"`
}

func (ac *AuthController) GoogleSignIn(c *gin.Context) {
	var input GoogleSignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Auth.GoogleSignIn(c.Request.Context(), input.IDToken, input.PushToken, input.Platform)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

func (ac *AuthController) SignOut(c *gin.Context) {
	uid := c.GetString("uid")
	if err := ac.Auth.SignOut(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// ReauthInput carries whichever credential the account's provider uses:
// password accounts send the password, Google accounts a fresh ID token.
type ReauthInput struct {
	Password string `json:"password"`
	IDToken  string `json:"idToken"`
}

func (ac *AuthController) Reauthenticate(c *gin.Context) {
	var input ReauthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		token string
		err   error
	)
	switch {
	case input.Password != "":
		token, err = ac.Auth.Reauthenticate(c.GetString("uid"), input.Password)
	case input.IDToken != "":
		token, err = ac.Auth.ReauthenticateGoogle(c.Request.Context(), c.GetString("uid"), input.IDToken)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "password or idToken required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reauthToken": token})
}

type ChangePasswordInput struct {
	ReauthToken string `json:"reauthToken" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Auth.ChangePassword(c.GetString("uid"), input.ReauthToken, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type DeleteAccountInput struct {
	ReauthToken string `json:"reauthToken" binding:"required"`
}

func (ac *AuthController) DeleteAccount(c *gin.Context) {
	var input DeleteAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Auth.DeleteAccount(c.Request.Context(), c.GetString("uid"), input.ReauthToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := ac.Auth.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := ac.Auth.ConfirmPasswordReset(c.Request.Context(), input.Code, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
