package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *WebServer) initAuthRouter() {
	s.root.POST("/api/auth/login", s.login)
	s.root.POST("/api/auth/logout", s.logout)
	s.root.GET("/api/auth/session", s.getSession)
}

// login exchanges credentials at the external identity provider. Failures
// surface as a message for the login form and never touch store state.
func (s *WebServer) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	sess, err := s.app.Idp().SignIn(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "SIGN_IN_FAILED", err.Error(), nil)
	}
	return ok(c, sess)
}

func (s *WebServer) logout(c echo.Context) error {
	if err := s.app.Idp().SignOut(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "SIGN_OUT_FAILED", err.Error(), nil)
	}
	return ok(c, echo.Map{"signed_out": true})
}

// getSession reports the current provider session, nil when signed out.
func (s *WebServer) getSession(c echo.Context) error {
	return ok(c, s.app.Idp().CurrentSession())
}
