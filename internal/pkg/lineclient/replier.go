// Package lineclient sends replies through the LINE Messaging API.
package lineclient

import (
	"fmt"
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// maxTextLength is the Messaging API limit for one text message
const maxTextLength = 5000

type IReplier interface {
	ReplyText(replyToken, text string) error
}

type replier struct {
	api *messaging_api.MessagingApiAPI
}

func NewReplier(channelToken string) (IReplier, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging client: %w", err)
	}
	return &replier{api: api}, nil
}

func (r *replier) ReplyText(replyToken, text string) error {
	_, err := r.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.TextMessage{Text: Truncate(text)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to reply on LINE: %w", err)
	}
	return nil
}

// Truncate keeps text within the per-message limit, counted in characters
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxTextLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxTextLength-1]) + "…"
}
