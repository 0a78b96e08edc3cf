package controllers

import (
	"net/http"
	"reflect"

	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("controllers")

// internalError logs the real cause and returns the generic 500 body; stack
// traces and driver errors never reach the client.
func internalError(ctx echo.Context, err error) error {
	_ = log.Error("request failed", err)
	return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

// entityID pulls the embedded Base ID off any model.
func entityID(entity interface{}) string {
	v := reflect.ValueOf(entity).Elem()
	base := v.FieldByName("Base")
	if !base.IsValid() {
		return ""
	}
	id := base.FieldByName("ID")
	if !id.IsValid() {
		return ""
	}
	return id.String()
}
