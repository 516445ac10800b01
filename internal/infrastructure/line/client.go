package line

import (
	"context"
	"fmt"
	"hydration/internal/domain/constant"
	"hydration/internal/domain/entity"
	"hydration/internal/pkg/logger"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	target string // user that receives fired reminders
	log    logger.Logger
}

// NewClient creates a LINE Bot client. target is the LINE user ID that fired reminders are pushed to.
func NewClient(channelSecret, channelToken, target string, log logger.Logger) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client: bot,
		target: target,
		log:    log,
	}, nil
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.ReplyMessage(replyToken, messages...).Do()
	if err != nil {
		return err // Return the error for the caller to handle
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	_, err := c.PushMessage(to, messages...).WithContext(ctx).Do()
	if err != nil {
		return err
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// ParseRequest parses incoming webhook requests.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.Client.ParseRequest(r)
}

// Deliver pushes a fired reminder to the target user, with quick replies for the common settings actions.
func (c *Client) Deliver(ctx context.Context, content entity.NotificationContent) error {
	if c.target == "" {
		return fmt.Errorf("no LINE target user configured")
	}
	text := content.Title
	if content.Body != "" {
		text = fmt.Sprintf("%s\n%s", content.Title, content.Body)
	}
	var message linebot.SendingMessage = linebot.NewTextMessage(text)
	if content.Data.Type == constant.ReminderTag {
		message = linebot.NewTextMessage(text).WithQuickReplies(linebot.NewQuickReplyItems(
			linebot.NewQuickReplyButton("", linebot.NewMessageAction(CommandSettings, CommandSettings)),
			linebot.NewQuickReplyButton("", linebot.NewMessageAction(CommandOff, CommandOff)),
		))
	}
	if err := c.PushMessages(ctx, c.target, message); err != nil {
		return fmt.Errorf("push to %s: %w", c.target, err)
	}
	return nil
}
