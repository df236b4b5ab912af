package aisvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_stripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare JSON", `{"topics":[]}`, `{"topics":[]}`},
		{"json fence", "```json\n{\"topics\":[]}\n```", `{"topics":[]}`},
		{"plain fence", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", `{}`},
		{"unterminated fence", "```json\n{}", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_decodeSessions(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		sessions, err := decodeSessions(`[{"blockDate":"2025-02-01","durationMinutes":45,"assignmentIndex":0}]`)
		assert.NoError(t, err)
		assert.Len(t, sessions, 1)
		assert.Equal(t, "2025-02-01", sessions[0].BlockDate)
		assert.Equal(t, 45, sessions[0].DurationMinutes)
	})
	t.Run("wrapped object", func(t *testing.T) {
		sessions, err := decodeSessions(`{"sessions":[{"blockDate":"2025-02-01","startTime":"10:00","durationMinutes":30,"assignmentIndex":1}]}`)
		assert.NoError(t, err)
		assert.Len(t, sessions, 1)
		assert.Equal(t, "10:00", sessions[0].StartTime.String)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := decodeSessions(`not json`)
		assert.Error(t, err)
	})
}
