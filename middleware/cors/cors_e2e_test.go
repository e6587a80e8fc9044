package cors

import (
	"testing"

	relaypath "github.com/relaypath/relaypath"
	"github.com/stretchr/testify/assert"
)

// TestCORSMiddlewareE2E exercises CORS the way it is actually deployed: as
// a Router.Use registration at "/" running ahead of a terminal handler via
// the resolved ancestor chain, not as a bare function call.
func TestCORSMiddlewareE2E(t *testing.T) {
	testCases := []struct {
		name           string
		config         Config
		origin         string
		expectedOrigin string
	}{
		{
			name:           "default config with any origin",
			config:         DefaultConfig(),
			origin:         "http://example.com",
			expectedOrigin: "*",
		},
		{
			name: "custom config with allowed origin",
			config: Config{
				AllowOrigins:     "http://example.com",
				AllowCredentials: true,
				ExposeHeaders:    "X-Custom-Header",
			},
			origin:         "http://example.com",
			expectedOrigin: "http://example.com",
		},
		{
			name:           "custom config with disallowed origin",
			config:         Config{AllowOrigins: "http://allowed.com"},
			origin:         "http://disallowed.com",
			expectedOrigin: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := relaypath.NewRouter()
			router.Use("/", New(tc.config))
			router.Get("/greet", func(c *relaypath.Ctx) {
				c.Status(relaypath.StatusOK)
				c.String("OK")
			})

			req := &relaypath.Request{Method: relaypath.Get, URI: relaypath.URI{AbsPath: "/greet"}}
			req.Headers.Add("Origin", tc.origin)

			chain, bindings := router.ResolveRequest(req)
			assert.Empty(t, bindings)
			assert.Len(t, chain, 2)

			c := relaypath.NewCtxWithChain(req, chain, nil)

			assert.Equal(t, relaypath.StatusOK, c.StatusCode())
			assert.Equal(t, tc.expectedOrigin, c.ResponseHeader("Access-Control-Allow-Origin"))

			if tc.config.AllowCredentials {
				assert.Equal(t, "true", c.ResponseHeader("Access-Control-Allow-Credentials"))
			}
			if tc.config.ExposeHeaders != "" {
				assert.Equal(t, tc.config.ExposeHeaders, c.ResponseHeader("Access-Control-Expose-Headers"))
			}
		})
	}
}
