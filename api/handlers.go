package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"slate-api/domain"
	"slate-api/store"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, board Board, snapshots Snapshots, deduper Deduper, logger *log.Logger) {
	e.GET("/api/sections", getSections(snapshots))
	e.GET("/api/tasks", getTasks(board, snapshots, logger))
	e.GET("/api/tasks/:id", getTask(board))
	e.GET("/api/board", getBoard(snapshots))
	e.POST("/api/commands", postCommands(board, deduper), GzipRequestMiddleware())
	e.GET("/api/stream", streamBoard(board, snapshots))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getSections(snapshots Snapshots) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := snapshots.SectionsJSON(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSONBlob(http.StatusOK, data)
	}
}

func getBoard(snapshots Snapshots) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := snapshots.BoardJSON(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSONBlob(http.StatusOK, data)
	}
}

func getTasks(board Board, snapshots Snapshots, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newListRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		sectionID := strings.TrimSpace(c.QueryParam("sectionId"))
		metrics.SetSectionFilter(sectionID != "")

		if sectionID != "" {
			fetchStart := time.Now()
			tasks := board.TasksBySection(sectionID)
			metrics.ObserveFetch(time.Since(fetchStart))
			metrics.SetTasksReturned(len(tasks))

			encodeStart := time.Now()
			err = c.JSON(http.StatusOK, tasks)
			metrics.ObserveEncode(time.Since(encodeStart))
			if err != nil {
				metrics.SetErrorStage("encode_response")
			}
			return err
		}

		fetchStart := time.Now()
		data, fetchErr := snapshots.TasksJSON(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("snapshot")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}

		encodeStart := time.Now()
		err = c.JSONBlob(http.StatusOK, data)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getTask(board Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := board.Task(c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			return c.String(http.StatusNotFound, err.Error())
		}
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, task)
	}
}

func postCommands(board Board, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, postCommandsMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		cmds := make([]domain.Command, 0, 4)
		if err := dec.Decode(&cmds); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		finalizeCommands(cmds)

		ctx := c.Request().Context()
		results := make([]commandResult, 0, len(cmds))
		for _, cmd := range cmds {
			if deduper != nil {
				fresh, err := deduper.Add(ctx, cmd.IdempotencyKey)
				if err != nil {
					// Dedup is best effort; apply rather than drop the command.
					c.Logger().Errorf("dedupe check failed: %v", err)
				} else if !fresh {
					results = append(results, commandResult{ID: cmd.ID, Status: statusDuplicate})
					continue
				}
			}
			results = append(results, applyCommand(board, cmd))
		}

		return c.JSON(http.StatusOK, postCommandsResponse{Results: results})
	}
}
