package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/webserver"
	"github.com/opsforge/fieldops/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/auth/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var opr domain.SysOpr
	err := GetDB(c).Where("username = ?", strings.TrimSpace(payload.Username)).First(&opr).Error
	if err != nil || !common.CheckPassword(opr.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}
	if !strings.EqualFold(opr.Status, common.ENABLED) {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account disabled", nil)
	}

	token, err := webserver.IssueToken(GetAppContext(c), opr.ID, opr.Username)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}

	// UI session cookie alongside the API token
	if sess, err := session.Get("fieldops_session", c); err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true}
		sess.Values["uid"] = opr.ID
		sess.Values["username"] = opr.Username
		_ = sess.Save(c.Request(), c.Response())
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).Update("last_login", time.Now())
	zap.L().Info("operator login", zap.String("username", opr.Username), zap.String("ip", c.RealIP()))

	return ok(c, map[string]interface{}{
		"token":    token,
		"username": opr.Username,
		"realname": opr.Realname,
	})
}
