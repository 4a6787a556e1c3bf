package backend

import (
	"context"
	"net/url"
)

func (c *Client) Fights(ctx context.Context, code string) ([]Fight, error) {
	var respData []Fight
	err := c.get(ctx, reportPath("fights", code), nil, &respData)
	return respData, err
}

func (c *Client) DPS(ctx context.Context, code string, fightIDs string) ([]DPSEntry, error) {
	var respData []DPSEntry
	err := c.get(ctx, reportPath("dps", code), fightQuery(fightIDs), &respData)
	return respData, err
}

func (c *Client) Healing(ctx context.Context, code string, fightIDs string) ([]HealingEntry, error) {
	var respData []HealingEntry
	err := c.get(ctx, reportPath("healing", code), fightQuery(fightIDs), &respData)
	return respData, err
}

func (c *Client) Gear(ctx context.Context, code string, fightIDs string) ([]GearRecord, error) {
	var respData []GearRecord
	err := c.get(ctx, reportPath("gear", code), fightQuery(fightIDs), &respData)
	return respData, err
}

func (c *Client) WowsimsExport(ctx context.Context, code string, fightIDs string) ([]SimExport, error) {
	var respData []SimExport
	err := c.get(ctx, reportPath("wowsims-export", code), fightQuery(fightIDs), &respData)
	return respData, err
}

// Compare fetches the player's and the top parse's ability breakdown.
// A payload carrying an "error" field is returned as *BackendError.
func (c *Client) Compare(ctx context.Context, code string, q CompareQuery) (*ComparisonResult, error) {
	query := url.Values{
		"fight_id": []string{q.FightID},
		"player":   []string{q.Player},
		"metric":   []string{string(q.Metric)},
	}

	var respData struct {
		ComparisonResult
		Error string `json:"error"`
	}
	err := c.get(ctx, reportPath("compare", code), query, &respData)
	if err != nil {
		return nil, err
	}
	if respData.Error != "" {
		return nil, &BackendError{Message: respData.Error}
	}

	res := respData.ComparisonResult
	return &res, nil
}

func (c *Client) GuildLogs(ctx context.Context, guild, server string) ([]GuildLog, error) {
	query := url.Values{
		"guild":  []string{guild},
		"server": []string{server},
	}

	var respData []GuildLog
	err := c.get(ctx, "/api/guild-logs", query, &respData)
	return respData, err
}

func (c *Client) ZoneSummary(ctx context.Context, guild, server string) (map[string]int, error) {
	query := url.Values{
		"guild":  []string{guild},
		"server": []string{server},
	}

	var respData map[string]int
	err := c.get(ctx, "/api/zone-summary", query, &respData)
	return respData, err
}

func (c *Client) RaidingPopulation(ctx context.Context, server string) (map[string]int, error) {
	query := url.Values{
		"server": []string{server},
	}

	var respData map[string]int
	err := c.get(ctx, "/api/raiding-population", query, &respData)
	return respData, err
}

func (c *Client) PlayerSummary(ctx context.Context, guild, server, player string) (*PlayerSummary, error) {
	query := url.Values{
		"guild":  []string{guild},
		"server": []string{server},
		"player": []string{player},
	}

	var respData PlayerSummary
	err := c.get(ctx, "/api/player-summary", query, &respData)
	if err != nil {
		return nil, err
	}
	return &respData, nil
}
