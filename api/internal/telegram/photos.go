package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// acceptPhoto roasts a photo whose caption is "Name | habit [| level]".
func (r *Router) acceptPhoto(ctx context.Context, msg tgbotapi.Message) {
	cid := msg.Chat.ID
	args, err := ParseArgs(msg.Caption, r.Level(cid))
	if err != nil {
		r.send(cid, "Add a caption to the photo: Name | habit | level")
		return
	}

	log := zerolog.Ctx(ctx)
	ph := msg.Photo[len(msg.Photo)-1]
	img, err := r.downloadFile(ctx, ph.FileID)
	if err != nil {
		// carry on without the photo
		log.Error().Err(err).Str("file_id", ph.FileID).Msg("photo download failed")
	}
	r.runRoast(ctx, cid, args, img)
}

func (r *Router) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}

	limit := r.MaxUpload
	if limit <= 0 {
		limit = 10 << 20
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("photo is larger than %d bytes", limit)
	}
	return b, nil
}

func (r *Router) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return &http.Client{Timeout: 60 * time.Second}
}
