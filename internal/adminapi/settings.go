package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/crm/settings", getSettings)
	webserver.ApiPUT("/crm/settings", updateSettings)
}

func getSettings(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	s, err := app.GetBusinessSettings(GetDB(c), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, s)
}

// updateSettings upserts the one-per-account business settings record.
func updateSettings(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	s, err := app.SaveBusinessSettings(GetDB(c), uid, payload)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save settings", err.Error())
	}
	return ok(c, s)
}
