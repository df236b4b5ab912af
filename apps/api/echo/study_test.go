package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/trezcool/studium/apps/api/echo"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/streak"
)

func TestStudyAPI_streak(t *testing.T) {
	deps := setup(t)
	userID := "11111111-1111-1111-1111-111111111111"
	token := getToken(t, deps.conf, userID, "")

	getStreak := func(t *testing.T) streak.Streak {
		req, rec := newAuthRequest(http.MethodGet, "/v1/streak", token)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var s streak.Streak
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("decoding response failed: %v", err)
		}
		return s
	}
	record := func(t *testing.T, date string) streak.Streak {
		body := marshallObj(t, RecordSessionRequest{Date: date})
		req, rec := newAuthRequest(http.MethodPost, "/v1/study-sessions", token, body)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var s streak.Streak
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("decoding response failed: %v", err)
		}
		return s
	}

	if s := getStreak(t); s.Current != 0 || s.Longest != 0 {
		t.Errorf("fresh streak = %+v; want zeros", s)
	}

	if s := record(t, "2025-03-10"); s.Current != 1 {
		t.Errorf("Current = %v; want 1", s.Current)
	}
	if s := record(t, "2025-03-11"); s.Current != 2 || s.Longest != 2 {
		t.Errorf("streak = %+v; want Current 2 Longest 2", s)
	}
	// same day again is a no-op
	if s := record(t, "2025-03-11"); s.Current != 2 {
		t.Errorf("Current = %v; want 2", s.Current)
	}
	// a gap restarts the run but keeps the high-water mark
	if s := record(t, "2025-03-15"); s.Current != 1 || s.Longest != 2 {
		t.Errorf("streak = %+v; want Current 1 Longest 2", s)
	}
}

func TestStudyAPI_recordSession_badDate(t *testing.T) {
	deps := setup(t)
	token := getToken(t, deps.conf, "11111111-1111-1111-1111-111111111111", "")

	tests := []httpTest{
		{
			name:     "missing date",
			body:     marshallObj(t, RecordSessionRequest{}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "not a date",
			body:     marshallObj(t, RecordSessionRequest{Date: "yesterday"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/study-sessions", token, tt.body)
			deps.server.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestStudyAPI_queryBlocks(t *testing.T) {
	deps := setup(t)
	userID := "11111111-1111-1111-1111-111111111111"
	token := getToken(t, deps.conf, userID, "")

	mkBlock := func(date string) schedule.StudyBlock {
		d, _ := schedule.ParseDate(date)
		return schedule.StudyBlock{UserID: userID, ClassID: "c1", BlockDate: d, DurationMinutes: 30}
	}
	_, err := deps.schedSvc.Replace(testCtx(), "c1", []schedule.StudyBlock{
		mkBlock("2025-02-03"), mkBlock("2025-02-10"), mkBlock("2025-02-17"),
	})
	if err != nil {
		t.Fatalf("seeding blocks failed: %v", err)
	}

	listBlocks := func(t *testing.T, path string) []schedule.StudyBlock {
		req, rec := newAuthRequest(http.MethodGet, path, token)
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var blocks []schedule.StudyBlock
		if err := json.Unmarshal(rec.Body.Bytes(), &blocks); err != nil {
			t.Fatalf("decoding response failed: %v", err)
		}
		return blocks
	}

	if blocks := listBlocks(t, "/v1/study-blocks"); len(blocks) != 3 {
		t.Errorf("len(blocks) = %v; want 3", len(blocks))
	}
	if blocks := listBlocks(t, "/v1/study-blocks?start=2025-02-05&end=2025-02-12"); len(blocks) != 1 {
		t.Errorf("len(blocks) = %v; want 1", len(blocks))
	} else if blocks[0].BlockDate.String() != "2025-02-10" {
		t.Errorf("BlockDate = %v; want 2025-02-10", blocks[0].BlockDate)
	}

	t.Run("other user sees nothing", func(t *testing.T) {
		otherToken := getToken(t, deps.conf, "22222222-2222-2222-2222-222222222222", "")
		req, rec := newAuthRequest(http.MethodGet, "/v1/study-blocks", otherToken)
		deps.server.ServeHTTP(rec, req)
		var blocks []schedule.StudyBlock
		if err := json.Unmarshal(rec.Body.Bytes(), &blocks); err != nil {
			t.Fatalf("decoding response failed: %v", err)
		}
		if len(blocks) != 0 {
			t.Errorf("len(blocks) = %v; want 0", len(blocks))
		}
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/study-blocks")
		deps.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusUnauthorized)
		}
	})
}
