package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/tansancola/sceneswitcher/internal/app/infrastructure/storage"
	"github.com/tansancola/sceneswitcher/pkg/logger"
)

// Twitch is a narrow Helix client used to validate credentials and resolve
// channel logins to ids. Lookups are cached and requests rate limited.
type Twitch struct {
	log    logger.Logger
	client *http.Client

	oauth    string
	clientID string

	limiter *rate.Limiter
	ids     *storage.Cache[string]

	helixURL string
	idURL    string
}

func NewTwitch(log logger.Logger, client *http.Client, oauth, clientID string) *Twitch {
	return &Twitch{
		log:      log,
		client:   client,
		oauth:    oauth,
		clientID: clientID,
		limiter:  rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
		ids:      storage.NewCache[string](128, 24*time.Hour),
		helixURL: "https://api.twitch.tv/helix",
		idURL:    "https://id.twitch.tv/oauth2",
	}
}

// ValidateToken resolves a bearer credential to the login it was issued for.
func (t *Twitch) ValidateToken(ctx context.Context, token string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.idURL+"/validate", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "OAuth "+token)

	var data validateResponse
	if err := t.do(req, &data); err != nil {
		return "", fmt.Errorf("validate token: %w", err)
	}

	return data.Login, nil
}

func (t *Twitch) GetChannelID(ctx context.Context, login string) (string, error) {
	if id, ok := t.ids.Get(login); ok {
		return id, nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := t.helixURL + "/users?login=" + url.QueryEscape(login)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.oauth)
	req.Header.Set("Client-Id", t.clientID)

	var data usersResponse
	if err := t.do(req, &data); err != nil {
		return "", fmt.Errorf("get channel id: %w", err)
	}
	if len(data.Data) == 0 {
		return "", fmt.Errorf("get channel id: login %s not found", login)
	}

	t.ids.Set(login, data.Data[0].ID)
	return data.Data[0].ID, nil
}

func (t *Twitch) do(req *http.Request, target any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twitch returned %s: %s", resp.Status, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
