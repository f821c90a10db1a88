package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Options struct {
	CORSOrigins []string
	BodyLimit   string
}

// New はミドルウェア込みのechoを作る（ルートは別途RegisterRoutes）
func New(log *logging.SlogLogger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	//1リクエスト1行
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "err", v.Error)
			}
			ctx := c.Request().Context()
			if v.Status >= http.StatusInternalServerError {
				log.Error(ctx, "request", args...)
			} else {
				log.Info(ctx, "request", args...)
			}
			return nil
		},
	}))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	limit := opts.BodyLimit
	if limit == "" {
		limit = "1M"
	}
	e.Use(echomw.BodyLimit(limit))

	return e
}

// Start はctxが終わるまで待ち、受付中のリクエストを捌いてから止まる
func Start(ctx context.Context, e *echo.Echo, addr string, log logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down http")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
