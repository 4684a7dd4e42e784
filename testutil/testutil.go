// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/models"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

// Identifiers used by the request builders
const (
	TeamID    = "T1"
	TriggerID = "trigger-1"
)

// Message is one recorded chat.postMessage or chat.postEphemeral call
type Message struct {
	Channel string
	User    string
	Text    string
	Blocks  string
}

// Canvas is one recorded canvases.create call
type Canvas struct {
	Title    string
	Markdown string
}

// OpenedView is one recorded views.open call
type OpenedView struct {
	TriggerID string
	View      slack.ModalViewRequest
}

// FakeSlack records outbound Web API calls. Set Errors[method] to make
// a method fail, e.g. Errors["canvases.create"]. ErrorsByChannel fails
// chat.postMessage for one channel only.
type FakeSlack struct {
	mu         sync.Mutex
	Messages   []Message
	Ephemerals []Message
	Views      []OpenedView
	Canvases   []Canvas
	Errors     map[string]error
	CanvasID   string

	ErrorsByChannel map[string]error
}

func NewFakeSlack() *FakeSlack {
	return &FakeSlack{
		Errors:          map[string]error{},
		ErrorsByChannel: map[string]error{},
		CanvasID:        "F12345",
	}
}

func (f *FakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["chat.postMessage"]; err != nil {
		return "", "", err
	}
	if err := f.ErrorsByChannel[channelID]; err != nil {
		return "", "", err
	}
	msg, err := decodeMessage(channelID, options)
	if err != nil {
		return "", "", err
	}
	f.Messages = append(f.Messages, msg)
	return channelID, "1700000000.000100", nil
}

func (f *FakeSlack) PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["chat.postEphemeral"]; err != nil {
		return "", err
	}
	msg, err := decodeMessage(channelID, options)
	if err != nil {
		return "", err
	}
	msg.User = userID
	f.Ephemerals = append(f.Ephemerals, msg)
	return "1700000000.000200", nil
}

func (f *FakeSlack) OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["views.open"]; err != nil {
		return nil, err
	}
	f.Views = append(f.Views, OpenedView{TriggerID: triggerID, View: view})
	return &slack.ViewResponse{}, nil
}

func (f *FakeSlack) OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["conversations.open"]; err != nil {
		return nil, false, false, err
	}
	ch := &slack.Channel{}
	ch.ID = "D" + strings.Join(params.Users, "")
	return ch, false, false, nil
}

func (f *FakeSlack) CreateCanvasContext(ctx context.Context, title string, documentContent slack.DocumentContent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["canvases.create"]; err != nil {
		return "", err
	}
	f.Canvases = append(f.Canvases, Canvas{Title: title, Markdown: documentContent.Markdown})
	return f.CanvasID, nil
}

// LastEphemeral returns the text of the most recent ephemeral reply.
func (f *FakeSlack) LastEphemeral(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Ephemerals) == 0 {
		t.Fatal("Expected an ephemeral message, got none")
	}
	return f.Ephemerals[len(f.Ephemerals)-1].Text
}

// LastMessage returns the most recent channel or DM message.
func (f *FakeSlack) LastMessage(t *testing.T) Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Messages) == 0 {
		t.Fatal("Expected a posted message, got none")
	}
	return f.Messages[len(f.Messages)-1]
}

func decodeMessage(channelID string, options []slack.MsgOption) (Message, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("", channelID, "", options...)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Channel: channelID,
		Text:    values.Get("text"),
		Blocks:  values.Get("blocks"),
	}, nil
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		BotToken:      "xoxb-test",
		SigningSecret: "test-signing-secret",
		StoreBackend:  store.BackendMemory,
		VoterSalt:     "test-voter-salt",
	}
}

// CommandRequest builds a slash command webhook
func CommandRequest(command, text, userID, channelID string) *http.Request {
	form := url.Values{
		"command":      {command},
		"text":         {text},
		"user_id":      {userID},
		"channel_id":   {channelID},
		"team_id":      {TeamID},
		"trigger_id":   {TriggerID},
		"response_url": {"https://hooks.slack.com/commands/T1/1/x"},
	}
	return formRequest(form)
}

// InteractionRequest builds an interactivity webhook around payload
func InteractionRequest(payload interface{}) *http.Request {
	b, _ := json.Marshal(payload)
	return formRequest(url.Values{"payload": {string(b)}})
}

// EventRequest builds an Events API webhook
func EventRequest(event interface{}) *http.Request {
	b, _ := json.Marshal(event)
	req := httptest.NewRequest("POST", "/slack/events", strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/slack/events", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// BlockActionPayload is a block_actions payload for one button click
func BlockActionPayload(userID, channelID, actionID, value string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "block_actions",
		"trigger_id": TriggerID,
		"user":       map[string]interface{}{"id": userID},
		"channel":    map[string]interface{}{"id": channelID},
		"team":       map[string]interface{}{"id": TeamID},
		"actions": []interface{}{
			map[string]interface{}{
				"type":      "button",
				"block_id":  "actions",
				"action_id": actionID,
				"value":     value,
			},
		},
	}
}

// ViewSubmissionPayload is a view_submission payload. values is keyed by
// block ID then action ID, see TextValue and friends.
func ViewSubmissionPayload(userID, callbackID, metadata string, values map[string]map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "view_submission",
		"trigger_id": TriggerID,
		"user":       map[string]interface{}{"id": userID},
		"team":       map[string]interface{}{"id": TeamID},
		"view": map[string]interface{}{
			"id":               "V1",
			"type":             "modal",
			"callback_id":      callbackID,
			"private_metadata": metadata,
			"state":            map[string]interface{}{"values": values},
		},
	}
}

// TextValue is the state of a plain_text_input
func TextValue(v string) interface{} {
	return map[string]interface{}{"type": "plain_text_input", "value": v}
}

// SelectValue is the state of a static_select
func SelectValue(v string) interface{} {
	return map[string]interface{}{
		"type":            "static_select",
		"selected_option": map[string]interface{}{"value": v},
	}
}

// RadioValue is the state of a radio_buttons element
func RadioValue(v string) interface{} {
	return map[string]interface{}{
		"type":            "radio_buttons",
		"selected_option": map[string]interface{}{"value": v},
	}
}

// CheckboxValues is the state of a checkboxes element
func CheckboxValues(vs ...string) interface{} {
	opts := []interface{}{}
	for _, v := range vs {
		opts = append(opts, map[string]interface{}{"value": v})
	}
	return map[string]interface{}{"type": "checkboxes", "selected_options": opts}
}

// CreateVotePoll stores an active vote poll and returns it
func CreateVotePoll(t *testing.T, st store.Store, channelID, creatorID string, multi bool, visibility models.Visibility, options ...string) *models.Poll {
	t.Helper()

	p, err := models.NewVotePoll(uuid.NewString(), channelID, creatorID, "Test Poll", options, multi, visibility)
	if err != nil {
		t.Fatalf("Failed to build test poll: %v", err)
	}
	if err := st.Create(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// CreateFeedbackPoll stores an active feedback, ranking or blended poll
func CreateFeedbackPoll(t *testing.T, st store.Store, channelID, creatorID string, kind models.Kind, visibility models.Visibility, questions ...models.Question) *models.Poll {
	t.Helper()

	p, err := models.NewFeedbackPoll(uuid.NewString(), channelID, creatorID, kind, "Test Survey", questions, visibility)
	if err != nil {
		t.Fatalf("Failed to build test poll: %v", err)
	}
	if err := st.Create(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
