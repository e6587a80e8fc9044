// Package cors implements cross-origin resource sharing as router
// middleware, the canonical example of ancestor-chain dispatch:
// registering it at "/" via Router.Use runs it for every request.
package cors

import (
	"strconv"
	"strings"

	relaypath "github.com/relaypath/relaypath"
)

const (
	headerOrigin                        = "Origin"
	headerVary                          = "Vary"
	headerAccessControlRequestHeaders   = "Access-Control-Request-Headers"
	headerAccessControlAllowOrigin      = "Access-Control-Allow-Origin"
	headerAccessControlAllowMethods     = "Access-Control-Allow-Methods"
	headerAccessControlAllowHeaders     = "Access-Control-Allow-Headers"
	headerAccessControlAllowCredentials = "Access-Control-Allow-Credentials"
	headerAccessControlExposeHeaders    = "Access-Control-Expose-Headers"
	headerAccessControlMaxAge           = "Access-Control-Max-Age"
)

// Config represents the configuration for the CORS middleware.
type Config struct {
	// AllowOrigins is a comma-separated list of origins a cross-domain request can be executed from.
	// If the special "*" value is present, all origins will be allowed.
	// Default value is "*"
	AllowOrigins string

	// AllowMethods is a comma-separated list of methods the client is allowed to use with
	// cross-domain requests. Default value is GET, POST, PUT, DELETE, HEAD, OPTIONS, PATCH
	AllowMethods string

	// AllowHeaders is a comma-separated list of non-simple headers the client is allowed to use with
	// cross-domain requests. Default value is ""
	AllowHeaders string

	// ExposeHeaders indicates which headers are safe to expose to the API of a CORS
	// API specification as a comma-separated list. Default value is ""
	ExposeHeaders string

	// AllowCredentials indicates whether the request can include user credentials like
	// cookies, HTTP authentication or client side SSL certificates. Default value is false
	AllowCredentials bool

	// MaxAge indicates how long (in seconds) the results of a preflight request
	// can be cached. Default value is 0 which stands for no max age.
	MaxAge int
}

// DefaultConfig returns the default configuration for the CORS middleware.
func DefaultConfig() Config {
	return Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{
			relaypath.Get.String(),
			relaypath.Post.String(),
			relaypath.Put.String(),
			relaypath.Delete.String(),
			relaypath.Head.String(),
			relaypath.Options.String(),
			relaypath.Patch.String(),
		}, ","),
		AllowHeaders:     "",
		ExposeHeaders:    "",
		AllowCredentials: false,
		MaxAge:           0,
	}
}

// New returns a middleware that handles CORS.
// If no config is provided, it uses the default config.
// If multiple configs are provided, only the first one is used.
func New(config ...Config) relaypath.Middleware {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	allowOrigins := cfg.AllowOrigins
	allowMethods := cfg.AllowMethods
	allowHeaders := cfg.AllowHeaders
	exposeHeaders := cfg.ExposeHeaders

	return func(c *relaypath.Ctx) {
		origin := c.Get(headerOrigin)
		if origin == "" {
			c.Next()
			return
		}

		allowOrigin := ""
		if allowOrigins == "*" {
			allowOrigin = "*"
		} else {
			for _, o := range strings.Split(allowOrigins, ",") {
				o = strings.TrimSpace(o)
				if o == origin || o == "*" {
					allowOrigin = origin
					break
				}
			}
		}

		c.SetHeader(headerAccessControlAllowOrigin, allowOrigin)
		if allowOrigin != "*" {
			c.SetHeader(headerVary, "Origin")
		}

		if c.Request.Method == relaypath.Options {
			c.SetHeader(headerAccessControlAllowMethods, allowMethods)

			if cfg.AllowHeaders != "" {
				c.SetHeader(headerAccessControlAllowHeaders, allowHeaders)
			} else if requestHeaders := c.Get(headerAccessControlRequestHeaders); requestHeaders != "" {
				c.SetHeader(headerAccessControlAllowHeaders, requestHeaders)
			}

			if cfg.AllowCredentials {
				c.SetHeader(headerAccessControlAllowCredentials, "true")
			}
			if cfg.MaxAge > 0 {
				c.SetHeader(headerAccessControlMaxAge, strconv.Itoa(cfg.MaxAge))
			}

			c.Status(relaypath.StatusNoContent)
			return
		}

		if cfg.ExposeHeaders != "" {
			c.SetHeader(headerAccessControlExposeHeaders, exposeHeaders)
		}
		if cfg.AllowCredentials {
			c.SetHeader(headerAccessControlAllowCredentials, "true")
		}

		c.Next()
	}
}
