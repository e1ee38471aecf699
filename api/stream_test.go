package api

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"slate-api/store"
)

func readFrame(t *testing.T, r *bufio.Reader) string {
	t.Helper()

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
}

func TestStreamBoardPushesSnapshots(t *testing.T) {
	e := echo.New()
	board := store.NewBoard()
	snapshots := store.NewSnapshotCache(board, nil, 0)
	Register(e, board, snapshots, nil, log.New())

	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/stream", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect stream: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(echo.HeaderContentType); got != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", got)
	}

	reader := bufio.NewReader(resp.Body)

	initial := readFrame(t, reader)
	if !strings.Contains(initial, `"inbox"`) {
		t.Fatalf("initial frame missing default section: %s", initial)
	}

	board.AddSection("Work")

	next := readFrame(t, reader)
	if !strings.Contains(next, "Work") {
		t.Fatalf("change frame missing new section: %s", next)
	}
}
