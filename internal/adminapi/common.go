package adminapi

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/webserver"
)

// InitRouter registers every admin API route on the global web server.
func InitRouter() {
	registerAuthRoutes()
	registerCustomerRoutes()
	registerAppointmentRoutes()
	registerInvoiceRoutes()
	registerSettingsRoutes()
	registerDashboardRoutes()
	registerSystemRoutes()
}

// GetAppContext pulls the application context injected by the web server.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

// gormSession gives each parallel query its own statement builder.
var gormSession = gorm.Session{NewDB: true}

// CurrentOperator extracts the authenticated operator's ID and username
// from the JWT claims. The ID is the account scope for every CRM query.
func CurrentOperator(c echo.Context) (int64, string) {
	token, ok := c.Get(webserver.JwtContextKey).(*jwt.Token)
	if !ok {
		return 0, ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ""
	}
	uid, _ := claims["uid"].(string)
	id, _ := strconv.ParseInt(uid, 10, 64)
	username, _ := claims["username"].(string)
	return id, username
}

// publishEvent forwards a mutation to the audit-log subscriber.
func publishEvent(c echo.Context, topic, action, desc string) {
	_, username := CurrentOperator(c)
	GetAppContext(c).Bus().Publish(topic, username, c.RealIP(), action, desc)
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Details: details})
}

type pagedResult struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResult{Data: data, Total: total, Page: page, PageSize: pageSize})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
