package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/syllabus"
)

// Service calls the generative AI gateway for syllabus extraction and
// study-session planning. Gateway responses are untrusted free-form text;
// everything is coerced into typed shapes here so the schedule core never
// sees raw model output.
type Service struct {
	conf   *core.Config
	client *http.Client
	logger core.Logger
}

var (
	_ syllabus.Parser  = (*Service)(nil)
	_ syllabus.Planner = (*Service)(nil)
)

func NewService(conf *core.Config, logger core.Logger) *Service {
	return &Service{
		conf:   conf,
		client: &http.Client{Timeout: conf.AI.Timeout},
		logger: logger,
	}
}

const parsePromptFmt = `Extract the weekly meeting schedule, topics and assignments from this syllabus.
Respond with only a JSON object shaped as:
{"topics":["..."],"assignments":[{"title":"...","notes":"...","dueDate":"YYYY-MM-DD"}],"schedule":{"days":["Monday"],"startTime":"HH:mm","endTime":"HH:mm","startDate":"YYYY-MM-DD","endDate":"YYYY-MM-DD"}}
Omit the schedule key if no weekly pattern is stated.

Syllabus:
%s`

func (svc *Service) ParseSyllabus(ctx context.Context, text string) (syllabus.Extraction, error) {
	raw, err := svc.generate(ctx, fmt.Sprintf(parsePromptFmt, text))
	if err != nil {
		return syllabus.Extraction{}, err
	}

	var ext syllabus.Extraction
	if err = json.Unmarshal([]byte(stripFences(raw)), &ext); err != nil {
		return syllabus.Extraction{}, errors.Wrap(err, "decoding extraction")
	}
	return ext, nil
}

const planPromptFmt = `Spread study sessions for these assignments between %s and %s.
Assignments (refer to them by zero-based index):
%s
Respond with only a JSON array shaped as:
[{"blockDate":"YYYY-MM-DD","startTime":"HH:mm","durationMinutes":60,"assignmentIndex":0}]`

func (svc *Service) PlanSessions(ctx context.Context, asgs []class.Assignment, rng schedule.DateRange) ([]schedule.PlannedSession, error) {
	list := new(strings.Builder)
	for i, asg := range asgs {
		due := "no due date"
		if asg.DueDate.Valid {
			due = "due " + asg.DueDate.Time.Format("2006-01-02")
		}
		fmt.Fprintf(list, "%d. %s (%s)\n", i, asg.Title, due)
	}

	raw, err := svc.generate(ctx, fmt.Sprintf(planPromptFmt, rng.Start, rng.End, list))
	if err != nil {
		return nil, err
	}
	return decodeSessions(stripFences(raw))
}

// decodeSessions accepts either a bare array or the {"sessions": [...]}
// wrapper some models insist on.
func decodeSessions(raw string) ([]schedule.PlannedSession, error) {
	var sessions []schedule.PlannedSession
	if err := json.Unmarshal([]byte(raw), &sessions); err == nil {
		return sessions, nil
	}
	var wrapped struct {
		Sessions []schedule.PlannedSession `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, errors.Wrap(err, "decoding planned sessions")
	}
	return wrapped.Sessions, nil
}

// gateway request/response shapes (Gemini generateContent REST API)

type (
	generatePart    struct {
		Text string `json:"text"`
	}
	generateContent struct {
		Parts []generatePart `json:"parts"`
	}
	generateRequest struct {
		Contents []generateContent `json:"contents"`
	}
	generateResponse struct {
		Candidates []struct {
			Content generateContent `json:"content"`
		} `json:"candidates"`
	}
)

func (svc *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding gateway request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", svc.conf.AI.BaseURL, svc.conf.AI.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", svc.conf.AI.APIKey)

	resp, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling AI gateway")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading gateway response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("AI gateway returned %d: %s", resp.StatusCode, data)
	}

	var gr generateResponse
	if err = json.Unmarshal(data, &gr); err != nil {
		return "", errors.Wrap(err, "decoding gateway response")
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("AI gateway returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences unwraps markdown code fences models love to wrap JSON in
// (```json ... ``` or plain ``` ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language hint line
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
