package server

import (
	"time"

	"clipstream/internal/middleware"
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

const refreshTokenCookie = "refreshToken"

// setTokenCookies attaches the pair as http-only cookies for browser
// clients. API clients can keep using the JSON body instead.
func (s *Server) setTokenCookies(c *fiber.Ctx, pair *service.TokenPair) {
	secure := s.config.IsProduction()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(s.config.AccessTokenTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(s.config.RefreshTokenTTL),
	})
}

func (s *Server) clearTokenCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Expires:  time.Now().Add(-time.Hour),
		})
	}
}

// Register handles POST /api/auth/register. Multipart form with the
// identity fields plus optional avatar and coverImage files.
func (s *Server) Register(c *fiber.Ctx) error {
	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeAvatar()
	cover, closeCover, err := formFile(c, "coverImage")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeCover()

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("fullName"),
		Password: c.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, pair, err := s.userService.Login(c.Context(), service.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setTokenCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Logged in successfully")
}

// RefreshTokens handles POST /api/auth/refresh. The refresh token comes
// from the JSON body or the refreshToken cookie.
func (s *Server) RefreshTokens(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.BodyParser(&req)

	presented := req.RefreshToken
	if presented == "" {
		presented = c.Cookies(refreshTokenCookie)
	}

	pair, err := s.userService.Refresh(c.Context(), presented)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setTokenCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, pair, "Tokens refreshed successfully")
}

// Logout handles POST /api/auth/logout. Revokes the refresh slot and
// clears the cookies.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.userService.Logout(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	s.clearTokenCookies(c)
	return models.Respond(c, fiber.StatusOK, nil, "Logged out successfully")
}
