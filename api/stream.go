package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// streamBoard pushes the board projection over server-sent events: one frame
// on connect, one per change notification from either store, and periodic
// keep-alive comments in between. Coalesced notifications collapse into a
// single frame; clients always receive the latest snapshot.
func streamBoard(board Board, snapshots Snapshots) echo.HandlerFunc {
	keepalive := envDur("STREAM_KEEPALIVE", 25*time.Second)

	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		changes := make(chan struct{}, 1)
		signal := func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}
		unsubscribeSections := board.SubscribeSections(signal)
		defer unsubscribeSections()
		unsubscribeTasks := board.SubscribeTasks(signal)
		defer unsubscribeTasks()

		ctx := c.Request().Context()
		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		push := func() error {
			data, err := snapshots.BoardJSON(ctx)
			if err != nil {
				return err
			}
			if _, err := c.Response().Write([]byte("data: ")); err != nil {
				return err
			}
			if _, err := c.Response().Write(data); err != nil {
				return err
			}
			if _, err := c.Response().Write([]byte("\n\n")); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		}

		if err := push(); err != nil {
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
				if err := push(); err != nil {
					return nil
				}
			case <-ticker.C:
				if _, err := c.Response().Write([]byte(": keep-alive\n\n")); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}
