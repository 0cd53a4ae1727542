package webserver

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsoniterSerializer swaps echo's encoding/json for json-iterator, same as
// the rest of the codebase.
type jsoniterSerializer struct{}

func (jsoniterSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsoniterSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unmarshal error: %v", err)).SetInternal(err)
	}
	return nil
}

// payloadValidator adapts go-playground/validator for echo's
// c.Validate(payload) calls.
type payloadValidator struct {
	validate interface {
		Struct(s interface{}) error
	}
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func nowPlusHours(h int) time.Time {
	if h <= 0 {
		h = 24
	}
	return time.Now().Add(time.Duration(h) * time.Hour)
}
