package backend

import (
	"context"
	"net/url"

	"github.com/vantagedating/adminctl/internal/errors"
)

// StatsRange is the window of the statistics endpoint.
type StatsRange string

// Statistics windows
const (
	StatsRange7d  StatsRange = "7d"
	StatsRange30d StatsRange = "30d"
	StatsRange90d StatsRange = "90d"
	StatsRangeAll StatsRange = "all"
)

// ParseStatsRange validates s. An empty string selects 7d.
func ParseStatsRange(s string) (StatsRange, error) {
	v, err := parseChoice("range", s, string(StatsRange7d), []string{"7d", "30d", "90d", "all"})
	return StatsRange(v), err
}

type creditSettingsResponse struct {
	Settings *CreditSettings `json:"settings"`
}

// Statistics returns engagement statistics for the window.
func (c *Client) Statistics(ctx context.Context, window StatsRange) (*Statistics, error) {
	if window == "" {
		window = StatsRange7d
	}
	query := url.Values{"range": {string(window)}}

	var stats Statistics
	if err := c.get(ctx, RouteStatistics, RouteStatistics, query, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreditSettings returns the credit price list.
func (c *Client) CreditSettings(ctx context.Context) (*CreditSettings, error) {
	var resp creditSettingsResponse
	if err := c.get(ctx, RouteCreditSettings, RouteCreditSettings, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Settings == nil {
		return &CreditSettings{}, nil
	}
	return resp.Settings, nil
}

// UpdateCreditSettings replaces the credit price list.
func (c *Client) UpdateCreditSettings(ctx context.Context, settings CreditSettings) error {
	for field, v := range map[string]int{
		"chatMessage":         settings.ChatMessage,
		"voiceCallPerMinute":  settings.VoiceCallPerMinute,
		"videoCallPerMinute":  settings.VideoCallPerMinute,
		"photoViewCredits":    settings.PhotoViewCredits,
		"videoViewCredits":    settings.VideoViewCredits,
		"voiceMessageCredits": settings.VoiceMessageCredits,
	} {
		if v < 0 {
			return errors.NewInputInvalidError(field, v, "zero or more")
		}
	}
	return c.put(ctx, RouteCreditSettings, RouteCreditSettings, settings, nil)
}
