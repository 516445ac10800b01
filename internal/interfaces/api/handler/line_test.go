package handler

import (
	"context"
	"hydration/internal/infrastructure/line"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replyText(t *testing.T, messages []linebot.SendingMessage) string {
	t.Helper()
	require.Len(t, messages, 1)
	text, ok := messages[0].(*linebot.TextMessage)
	require.True(t, ok)
	return text.Text
}

func TestLineHandler_SettingsCommand(t *testing.T) {
	svc := newFakeReminderService()
	h := NewLineHandler(nil, svc, "", logger.Discard())

	reply, err := h.handleCommand(context.Background(), "U1", line.CommandSettings)
	require.NoError(t, err)
	text := replyText(t, reply)
	assert.Contains(t, text, "オン")
	assert.Contains(t, text, "2時間ごと")
	assert.Contains(t, text, "次回")
	assert.Empty(t, svc.calls)
}

func TestLineHandler_Toggle(t *testing.T) {
	svc := newFakeReminderService()
	h := NewLineHandler(nil, svc, "", logger.Discard())

	reply, err := h.handleCommand(context.Background(), "U1", line.CommandOff)
	require.NoError(t, err)
	assert.False(t, svc.pref.Enabled)
	assert.Contains(t, replyText(t, reply), "オフ")

	_, err = h.handleCommand(context.Background(), "U1", " "+line.CommandOn+" ")
	require.NoError(t, err)
	assert.True(t, svc.pref.Enabled)
}

func TestLineHandler_IntervalChip(t *testing.T) {
	svc := newFakeReminderService()
	h := NewLineHandler(nil, svc, "", logger.Discard())

	reply, err := h.handleCommand(context.Background(), "U1", "1時間30分")
	require.NoError(t, err)
	assert.Equal(t, 5400, svc.pref.IntervalSeconds)
	assert.Contains(t, replyText(t, reply), "1時間30分ごと")
}

func TestLineHandler_UnknownTextShowsHelp(t *testing.T) {
	svc := newFakeReminderService()
	h := NewLineHandler(nil, svc, "", logger.Discard())

	reply, err := h.handleCommand(context.Background(), "U1", "こんにちは")
	require.NoError(t, err)
	assert.Contains(t, replyText(t, reply), "「テスト」")
	assert.Empty(t, svc.calls)
}

func TestLineHandler_OwnerOnly(t *testing.T) {
	svc := newFakeReminderService()
	h := NewLineHandler(nil, svc, "Uowner", logger.Discard())

	_, err := h.handleCommand(context.Background(), "Ustranger", line.CommandTest)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Empty(t, svc.calls)

	_, err = h.handleCommand(context.Background(), "Ustranger", line.CommandSettings)
	assert.NoError(t, err)

	_, err = h.handleCommand(context.Background(), "Uowner", line.CommandTest)
	assert.NoError(t, err)
	assert.Equal(t, []string{"SendTestNow"}, svc.calls)
}

func TestLineHandler_BackendFailure(t *testing.T) {
	svc := newFakeReminderService()
	svc.fail = true
	h := NewLineHandler(nil, svc, "", logger.Discard())

	_, err := h.handleCommand(context.Background(), "U1", line.CommandTest)
	assert.ErrorIs(t, err, appErrors.ErrBackend)
	assert.Contains(t, errorText(err), "失敗")
}
