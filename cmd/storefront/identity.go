package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/handoff"
)

const (
	tabCookie    = "tab"
	clientCookie = "client"
	identityKey  = "identity"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// withIdentity makes sure every request carries a tab and a client cookie.
// The tab cookie lives as long as the browser session, the client cookie
// for a year.
func withIdentity(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		id := handoff.Identity{
			TabID:    cookieOrNew(c, tabCookie, 0, secure),
			ClientID: cookieOrNew(c, clientCookie, clientCookieMaxAge, secure),
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func cookieOrNew(c *gin.Context, name string, maxAge int, secure bool) string {
	if v, err := c.Cookie(name); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	v := uuid.NewString()
	c.SetCookie(name, v, maxAge, "/", "", secure, true)
	return v
}

func identity(c *gin.Context) handoff.Identity {
	id, _ := c.MustGet(identityKey).(handoff.Identity)
	return id
}
