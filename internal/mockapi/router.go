package mockapi

import (
	_ "embed"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed openapi.json
var OpenAPISpec []byte

const (
	PathHealth  = "/health"
	PathReady   = "/ready"
	PathSwagger = "/swagger"
	// APIPrefix — корень эндпоинтов; клиент обращается к <base>/api/.
	APIPrefix = "/api"
)

// NewRouter собирает gin-маршруты заглушки.
func NewRouter(h *Handler, tokens *Tokens, log *slog.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(log))
	r.GET(PathHealth, Health)
	r.GET(PathReady, Ready)
	r.GET(PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, PathSwagger+"/") })
	r.GET(PathSwagger+"/*any", func(c *gin.Context) {
		switch strings.TrimPrefix(c.Param("any"), "/") {
		case "openapi.json":
			c.Data(http.StatusOK, "application/json", OpenAPISpec)
			return
		case "":
			c.Request.URL.Path = PathSwagger + "/index.html"
			c.Request.RequestURI = PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(PathSwagger+"/openapi.json"))(c)
	})

	api := r.Group(APIPrefix)
	{
		api.POST("/AuthDesktop/LoginDesktop", h.Login)
		// Исходный путь с пробелом (клиент шлёт Login%20Desktop).
		api.POST("/AuthDesktop/Login Desktop", h.Login)

		for _, kind := range Kinds {
			g := api.Group("/" + kind.Resource())
			g.GET("/Listar", h.ListUsers(kind))
			g.POST("/Adicionar", h.AddUser(kind))
			g.PUT("/Editar/:id", h.EditUser(kind))
			g.DELETE("/Excluir/:id", h.DeleteUser(kind))
		}

		tickets := api.Group("/Chamado", tokens.RequireBearer())
		tickets.GET("/ListarChamados", h.ListTickets)
		tickets.PUT("/Editar/:id", h.EditTicket)
		tickets.DELETE("/Excluir/:id", h.DeleteTicket)
		tickets.POST("/Abrir", h.OpenTicket)
	}
	return r
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
