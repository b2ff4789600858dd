package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FetchScores busca os placares recentes de um esporte.
// O provedor só devolve jogos dentro da janela daysFrom (poucos dias).
func (c *Client) FetchScores(ctx context.Context, sportPath string, daysFrom int) ([]byte, error) {
	q := url.Values{}
	q.Set("apiKey", c.cfg.ScoresAPIKey)
	q.Set("daysFrom", fmt.Sprint(daysFrom))
	u := fmt.Sprintf("%s/v4/sports/%s/scores/?%s", c.cfg.ScoresBaseURL, url.PathEscape(sportPath), q.Encode())
	key := fmt.Sprintf("scores:%s:%d", sportPath, daysFrom)
	return c.get(ctx, key, u, c.cfg.ScoresTTL, nil)
}

// FetchPlayerStatsByWeek busca o boxscore de um jogador numa semana da temporada
func (c *Client) FetchPlayerStatsByWeek(ctx context.Context, sportPath string, season int, segment string, week int, playerID string) ([]byte, error) {
	seasonKey := fmt.Sprintf("%d%s", season, segment)
	u := fmt.Sprintf("%s/v3/%s/stats/json/PlayerGameStatsByPlayerID/%s/%d/%s",
		c.cfg.StatsBaseURL, url.PathEscape(sportPath), seasonKey, week, url.PathEscape(playerID))
	key := fmt.Sprintf("stats:week:%s:%s:%d:%s", sportPath, seasonKey, week, playerID)
	return c.get(ctx, key, u, c.cfg.StatsTTL, c.statsHeader())
}

// FetchPlayerStatsByDate busca o boxscore de todos os jogadores na data,
// ou de um jogador só quando playerID é informado
func (c *Client) FetchPlayerStatsByDate(ctx context.Context, sportPath, date, playerID string) ([]byte, error) {
	if playerID == "" {
		u := fmt.Sprintf("%s/v3/%s/stats/json/PlayerGameStatsByDate/%s",
			c.cfg.StatsBaseURL, url.PathEscape(sportPath), url.PathEscape(date))
		return c.get(ctx, fmt.Sprintf("stats:date:%s:%s", sportPath, date), u, c.cfg.StatsTTL, c.statsHeader())
	}
	u := fmt.Sprintf("%s/v3/%s/stats/json/PlayerGameStatsByPlayer/%s/%s",
		c.cfg.StatsBaseURL, url.PathEscape(sportPath), url.PathEscape(date), url.PathEscape(playerID))
	return c.get(ctx, fmt.Sprintf("stats:date:%s:%s:%s", sportPath, date, playerID), u, c.cfg.StatsTTL, c.statsHeader())
}

// FetchGradedPropsByDate busca os props já avaliados de um jogador na data
func (c *Client) FetchGradedPropsByDate(ctx context.Context, sportPath, date, playerID string) ([]byte, error) {
	u := fmt.Sprintf("%s/v3/%s/odds/json/PlayerPropsByPlayerID/%s/%s",
		c.cfg.StatsBaseURL, url.PathEscape(sportPath), url.PathEscape(date), url.PathEscape(playerID))
	key := fmt.Sprintf("props:%s:%s:%s", sportPath, date, playerID)
	return c.get(ctx, key, u, c.cfg.StatsTTL, c.statsHeader())
}

func (c *Client) statsHeader() http.Header {
	h := http.Header{}
	if c.cfg.StatsAPIKey != "" {
		h.Set("Ocp-Apim-Subscription-Key", c.cfg.StatsAPIKey)
	}
	return h
}
