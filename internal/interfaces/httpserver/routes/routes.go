package routes

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/janhq/jan-translator/internal/interfaces/httpserver/routes/v1"
)

// Provider aggregates versioned route registrars.
type Provider struct {
	V1 *v1.Routes
}

// NewProvider builds the route provider.
func NewProvider(v1Routes *v1.Routes) *Provider {
	return &Provider{V1: v1Routes}
}

// Register attaches every API version to the engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
}
