package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeAdvisorUI serves the browser chat client. The page at the root
// decodes the framed token stream produced by the chat endpoint.
func (s *Server) ServeAdvisorUI() {
	s.router.GET("/", func(c *gin.Context) {
		c.File("public/index.html")
	})

	s.router.StaticFS("/assets", http.Dir("public"))
}
