package handler

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/application/service"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"hydration/internal/infrastructure/line"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineHandler serves the reminder settings as a LINE chat conversation.
type LineHandler struct {
	lineClient      *line.Client
	reminderService service.ReminderService
	ownerUserID     string // empty means anyone may change settings
	log             logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient *line.Client,
	reminderService service.ReminderService,
	ownerUserID string,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:      lineClient,
		reminderService: reminderService,
		ownerUserID:     ownerUserID,
		log:             log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Info(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		default:
			h.log.Info(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleFollowEvent greets the user with the current settings.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s followed the bot.", userID))

	welcome := linebot.NewTextMessage("水分補給リマインダーです。「使い方」と入力すると操作方法を表示します。")
	if err := h.lineClient.SendMessages(event.ReplyToken, welcome, h.settingsMessage(ctx)); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send follow reply to user %s", userID), err)
	}
}

// handleMessageEvent processes message events.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Info(fmt.Sprintf("Ignoring non-text message from %s", event.Source.UserID))
		return
	}
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("Received text message from %s: %s", userID, message.Text))

	reply, err := h.handleCommand(ctx, userID, message.Text)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Command %q from %s failed: %v", message.Text, userID, err))
		h.replyWithError(event.ReplyToken, errorText(err))
		return
	}
	if err := h.lineClient.SendMessages(event.ReplyToken, reply...); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send reply to user %s", userID), err)
	}
}

// handleCommand applies a chat command and returns the messages to reply with.
func (h *LineHandler) handleCommand(ctx context.Context, userID, text string) ([]linebot.SendingMessage, error) {
	text = strings.TrimSpace(text)

	switch text {
	case line.CommandSettings:
		return []linebot.SendingMessage{h.settingsMessage(ctx)}, nil
	case line.CommandHelp:
		return []linebot.SendingMessage{howToUseMessage()}, nil
	}

	var ok bool
	switch text {
	case line.CommandOn, line.CommandOff:
		if err := h.authorize(userID); err != nil {
			return nil, err
		}
		ok = h.reminderService.SetEnabled(ctx, text == line.CommandOn)
	case line.CommandTest:
		if err := h.authorize(userID); err != nil {
			return nil, err
		}
		ok = h.reminderService.SendTestNow(ctx)
	default:
		interval, known := line.ParseIntervalLabel(text)
		if !known {
			return []linebot.SendingMessage{howToUseMessage()}, nil
		}
		if err := h.authorize(userID); err != nil {
			return nil, err
		}
		ok = h.reminderService.SetInterval(ctx, interval)
	}

	if !ok {
		return nil, appErrors.ErrBackend
	}
	return []linebot.SendingMessage{h.settingsMessage(ctx)}, nil
}

func (h *LineHandler) authorize(userID string) error {
	if h.ownerUserID != "" && userID != h.ownerUserID {
		return fmt.Errorf("%w: %s", appErrors.ErrUnauthorized, userID)
	}
	return nil
}

// settingsMessage renders the settings card: current state plus chips for every action.
func (h *LineHandler) settingsMessage(ctx context.Context) linebot.SendingMessage {
	pref := h.reminderService.Preference()
	text := settingsText(pref)
	if pref.Enabled {
		if tagged, err := h.reminderService.ListTagged(ctx); err == nil {
			for _, r := range tagged {
				if r.IsRepeating() {
					text += fmt.Sprintf("\n次回: %s", r.NextFireAfter(time.Now()).Local().Format("01/02 15:04"))
					break
				}
			}
		}
	}

	toggle := line.CommandOff
	if !pref.Enabled {
		toggle = line.CommandOn
	}
	buttons := []*linebot.QuickReplyButton{
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(toggle, toggle)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(line.CommandTest, line.CommandTest)),
	}
	for _, v := range constant.AllowedIntervals {
		label := line.IntervalLabel(v)
		buttons = append(buttons, linebot.NewQuickReplyButton("", linebot.NewMessageAction(label, label)))
	}
	return linebot.NewTextMessage(text).WithQuickReplies(linebot.NewQuickReplyItems(buttons...))
}

func settingsText(pref entity.ReminderPreference) string {
	if !pref.Enabled {
		return fmt.Sprintf("水分補給リマインダー: オフ\n間隔: %s", line.IntervalLabel(pref.IntervalSeconds))
	}
	return fmt.Sprintf("水分補給リマインダー: オン\n間隔: %sごと", line.IntervalLabel(pref.IntervalSeconds))
}

func howToUseMessage() linebot.SendingMessage {
	lines := []string{
		"「設定」: 現在の設定を表示",
		"「オン」「オフ」: リマインダーの切り替え",
		"「テスト」: 今すぐ通知を送信",
		"「30分」〜「4時間」: 通知間隔の変更",
	}
	return linebot.NewTextMessage(strings.Join(lines, "\n")).WithQuickReplies(linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(line.CommandSettings, line.CommandSettings)),
	))
}

func errorText(err error) string {
	if errors.Is(err, appErrors.ErrUnauthorized) {
		return "設定を変更する権限がありません。"
	}
	return "設定の反映に失敗しました。しばらくしてから再度お試しください。"
}

// replyWithError sends a standard error message to the user.
func (h *LineHandler) replyWithError(replyToken, userMessage string) {
	if err := h.lineClient.SendMessages(replyToken, linebot.NewTextMessage(userMessage)); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send error reply message: %s", userMessage), err)
	}
}
