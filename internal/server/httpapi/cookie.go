package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

type cookieOptions struct {
	httpOnly bool
	secure   bool
	sameSite http.SameSite
	maxAge   time.Duration
}

func (o cookieOptions) base() *http.Cookie {
	return &http.Cookie{
		Name:     common.TokenCookieName,
		Path:     "/",
		HttpOnly: o.httpOnly,
		Secure:   o.secure,
		SameSite: o.sameSite,
	}
}

func (s *Server) setTokenCookie(w http.ResponseWriter, token string) {
	c := s.cookie.base()
	c.Value = token
	c.MaxAge = int(s.cookie.maxAge / time.Second)
	c.Expires = time.Now().Add(s.cookie.maxAge).UTC()
	http.SetCookie(w, c)
}

func (s *Server) clearTokenCookie(w http.ResponseWriter) {
	c := s.cookie.base()
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, c)
}
