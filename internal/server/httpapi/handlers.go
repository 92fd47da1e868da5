package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated    = "User created successfully"
	msgUserExists     = "User already exists"
	msgLoggedIn       = "User logged in successfully"
	msgLoggedOut      = "User logged out successfully"
	msgFieldsRequired = "All fields are required"
	msgBadCredentials = "Incorrect password or email"
	msgInvalidBody    = "Invalid request body"
	msgInternal       = "Internal server error"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "gophauth",
	})
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody, "success": false})
		return
	}

	res, err := s.users.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.Is(err, common.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired, "success": false})
		case errors.Is(err, common.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgUserExists, "success": false})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message, "success": false})
		default:
			s.logger.Error(c.Request.Context(), "signup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal, "success": false})
		}
		return
	}

	s.setTokenCookie(c.Writer, res.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"success": true,
		"user": userResponse{
			ID:        res.User.ID,
			Email:     res.User.Email,
			Username:  res.User.Username,
			CreatedAt: res.User.CreatedAt,
		},
	})
}

// handleLogin answers credential failures with 200 and no success flag.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody, "success": false})
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingFields):
			c.JSON(http.StatusOK, gin.H{"message": msgFieldsRequired})
		case errors.Is(err, common.ErrInvalidCredentials):
			c.JSON(http.StatusOK, gin.H{"message": msgBadCredentials})
		default:
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal, "success": false})
		}
		return
	}

	s.setTokenCookie(c.Writer, res.Token)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedIn, "success": true})
}

func (s *Server) handleVerify(c *gin.Context) {
	token, err := c.Cookie(common.TokenCookieName)
	if err != nil {
		token = ""
	}

	res := s.users.Verify(c.Request.Context(), token)
	if !res.Status {
		c.JSON(http.StatusOK, gin.H{"status": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "user": res.Username})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearTokenCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut, "success": true})
}
