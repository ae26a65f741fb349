package zalo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Profile содержит данные пользователя из Zalo Graph API.
type Profile struct {
	ZaloID      string
	DisplayName string
	Avatar      string
}

// Client запрашивает профиль пользователя у Zalo Graph API по access токену
// мини-приложения.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент Zalo Graph API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type meResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// GetProfile возвращает профиль владельца access токена.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	url := c.baseURL + "/me?fields=id,name,picture"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("zalo: build request %w", err)
	}
	req.Header.Set("access_token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zalo: request %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zalo: unexpected status %d", resp.StatusCode)
	}

	var body meResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("zalo: decode response %w", err)
	}
	if body.Error != 0 {
		return nil, fmt.Errorf("zalo: api error %d: %s", body.Error, body.Message)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("zalo: empty user id in response")
	}

	return &Profile{
		ZaloID:      body.ID,
		DisplayName: body.Name,
		Avatar:      body.Picture.Data.URL,
	}, nil
}
