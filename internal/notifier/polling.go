package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CommandHandler answers one chat command. An empty reply sends nothing.
type CommandHandler func(ctx context.Context, command string) string

type update struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

const pollRetryDelay = 5 * time.Second

// StartPolling long-polls getUpdates and answers commands from the
// configured chat until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	client := &http.Client{Timeout: 35 * time.Second}
	offset := 0
	for ctx.Err() == nil {
		next, err := t.pollOnce(ctx, client, offset, 30, handler)
		if err == nil {
			offset = next
			continue
		}
		if ctx.Err() != nil {
			break
		}
		log.Printf("[WARN] polling request failed: %v", err)
		select {
		case <-ctx.Done():
		case <-time.After(pollRetryDelay):
		}
	}
	log.Println("[INFO] Telegram polling stopped")
}

// pollOnce fetches one batch of updates, dispatches each command and
// returns the next offset.
func (t *TelegramNotifier) pollOnce(ctx context.Context, client *http.Client, offset, timeoutSec int, handler CommandHandler) (int, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("timeout", strconv.Itoa(timeoutSec))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint("getUpdates")+"?"+q.Encode(), nil)
	if err != nil {
		return offset, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return offset, err
	}
	defer resp.Body.Close()

	var batch struct {
		OK          bool     `json:"ok"`
		Description string   `json:"description"`
		Result      []update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return offset, fmt.Errorf("decode polling response: %w", err)
	}
	if !batch.OK {
		return offset, fmt.Errorf("getUpdates rejected: %s", batch.Description)
	}

	for _, u := range batch.Result {
		offset = u.UpdateID + 1
		m := u.Message
		if m == nil || strings.TrimSpace(m.Text) == "" {
			continue
		}
		if from := strconv.FormatInt(m.Chat.ID, 10); from != t.ChatID {
			log.Printf("[WARN] ignoring command from chat %s", from)
			continue
		}
		cmd := strings.TrimSpace(m.Text)
		log.Printf("[INFO] received command: %s", cmd)
		if reply := handler(ctx, cmd); reply != "" {
			if err := t.Send(ctx, reply); err != nil {
				log.Printf("[ERROR] send reply: %v", err)
			}
		}
	}
	return offset, nil
}
