package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
)

// DefaultTelegramAPIURL is the Telegram Bot API root
const DefaultTelegramAPIURL = "https://api.telegram.org"

// TelegramRepository talks to the Telegram Bot API: it sends messages to
// chats and long-polls for incoming ones.
type TelegramRepository struct {
	logger      logger.Logger
	client      *http.Client
	baseURL     string
	token       string
	pollTimeout time.Duration
}

// NewTelegramRepository creates a Telegram Bot API client
func NewTelegramRepository(logger logger.Logger, baseURL, token string, pollTimeout time.Duration) *TelegramRepository {
	if baseURL == "" {
		baseURL = DefaultTelegramAPIURL
	}
	return &TelegramRepository{
		logger: logger,
		// long polls hold the connection for pollTimeout
		client:      &http.Client{Timeout: pollTimeout + 10*time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		pollTimeout: pollTimeout,
	}
}

var (
	_ repository.NotifierRepository   = (*TelegramRepository)(nil)
	_ repository.ChatUpdateRepository = (*TelegramRepository)(nil)
)

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
	Result      json.RawMessage `json:"result"`
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// Send delivers text to the chat ownerID
func (r *TelegramRepository) Send(ctx context.Context, ownerID int64, text string) error {
	if _, err := r.call(ctx, "sendMessage", sendMessageRequest{ChatID: ownerID, Text: text}); err != nil {
		return fmt.Errorf("send message to %d: %w", ownerID, err)
	}
	r.logger.Debug("Message sent", "chatId", ownerID)
	return nil
}

// GetUpdates long-polls for text messages with update_id >= offset
func (r *TelegramRepository) GetUpdates(ctx context.Context, offset int64) ([]entity.ChatMessage, error) {
	raw, err := r.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(r.pollTimeout / time.Second),
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}

	var updates []update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}

	messages := make([]entity.ChatMessage, 0, len(updates))
	for _, u := range updates {
		msg := entity.ChatMessage{UpdateID: u.UpdateID}
		// non-text updates still advance the offset
		if u.Message != nil {
			msg.OwnerID = u.Message.Chat.ID
			msg.Text = u.Message.Text
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *TelegramRepository) call(ctx context.Context, method string, body interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", r.baseURL, r.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if !response.OK {
		return nil, fmt.Errorf("telegram %s failed: %s (code: %d)", method, response.Description, response.ErrorCode)
	}
	return response.Result, nil
}
