package adminapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/pkg/common"
)

func seedOperator(t *testing.T, env *testEnv, username, password, status string) {
	t.Helper()
	hash, err := common.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.ctx.db.Create(&domain.SysOpr{
		ID: testUID, Username: username, Password: hash, Status: status,
		Realname: "Test Operator", Level: "super", LastLogin: time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	seedOperator(t, env, "admin", "fieldops", common.ENABLED)

	c, rec := env.request(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"fieldops"}`, 0)
	if err := login(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if tok, _ := body["token"].(string); tok == "" {
		t.Error("no token issued")
	}
	if body["username"] != "admin" {
		t.Errorf("username = %v", body["username"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	seedOperator(t, env, "admin", "fieldops", common.ENABLED)

	c, rec := env.request(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"nope"}`, 0)
	if err := login(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	seedOperator(t, env, "admin", "fieldops", common.DISABLED)

	c, rec := env.request(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"fieldops"}`, 0)
	if err := login(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("disabled account status = %d, want 401", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)
	c, rec := env.request(http.MethodPost, "/api/auth/login", `{"username":"admin"}`, 0)
	if err := login(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d, want 400", rec.Code)
	}
}
