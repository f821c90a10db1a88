package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ハンドラ共通。5xxだけログに残す
type base struct {
	log logging.Logger
}

func (b base) writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	ae, ok := usecase.AsAppError(err)
	if !ok {
		ae = usecase.ErrInternal.Wrap(err)
	}

	status := ae.Status()
	if status >= http.StatusInternalServerError {
		b.log.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"code", ae.Code,
			"err", err,
		)
	}
	return c.JSON(status, ErrorResponse{Error: ae.Message, Code: ae.Code})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: usecase.ErrInvalidInput.Code})
}

//middleware.AuthSession が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func getActorFromContext(c echo.Context) (usecase.Actor, bool) {
	id, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return usecase.Actor{UserID: id, Role: model.Role(role)}, true
}

func unauthorized(c echo.Context) error {
	ae := usecase.ErrMissingToken
	return c.JSON(ae.Status(), ErrorResponse{Error: ae.Message, Code: ae.Code})
}
