package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/opsforge/fieldops/internal/app"
)

// Context keys shared with the admin API handlers.
const (
	AppContextKey = "appctx"
	JwtContextKey = "jwt"
)

var server *WebServer

// WebServer wraps the echo instance plus the authenticated /api group.
type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
}

// Init builds the global web server. Must be called before route
// registration.
func Init(appCtx app.AppContext) {
	server = NewWebServer(appCtx)
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = jsoniterSerializer{}
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(appCtx.Config().Web.Secret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(appCtx.Config().Web.Secret),
		ContextKey:  JwtContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:fieldops_token",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/auth/login"
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		},
	}))

	return &WebServer{root: e, api: api, appCtx: appCtx}
}

// Listen starts the HTTP listener and blocks.
func (ws *WebServer) Listen() error {
	cfg := ws.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("Starting web server on %s", addr)
	return ws.root.Start(addr)
}

func Listen() error {
	return server.Listen()
}

// Instance exposes the global server (tests build their own via
// NewWebServer instead).
func Instance() *WebServer {
	return server
}

// Echo returns the underlying echo instance.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Route registration helpers over the global instance.

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Instance-scoped registration, used by tests with their own server.
func (ws *WebServer) ApiGET(path string, h echo.HandlerFunc) { ws.api.GET(path, h) }
func (ws *WebServer) ApiPOST(path string, h echo.HandlerFunc) { ws.api.POST(path, h) }
func (ws *WebServer) ApiPUT(path string, h echo.HandlerFunc) { ws.api.PUT(path, h) }
func (ws *WebServer) ApiDELETE(path string, h echo.HandlerFunc) { ws.api.DELETE(path, h) }

// IssueToken signs an API token for an operator.
func IssueToken(appCtx app.AppContext, oprID int64, username string) (string, error) {
	cfg := appCtx.Config().Web
	claims := jwt.MapClaims{
		"uid":      fmt.Sprintf("%d", oprID),
		"username": username,
		"exp":      jwt.NewNumericDate(nowPlusHours(cfg.JwtExpire)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}
