package trello

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/structures"
)

const (
	defaultBaseURL = "https://api.trello.com/1"
	defaultTimeout = 30 * time.Second

	// Trello caps action pages at 1000 entries.
	actionsPageLimit = 1000
)

type ClientInterface interface {
	Board(ctx context.Context, boardID string) (*BoardInfo, error)
	BoardMembers(ctx context.Context, boardID string) ([]models.Member, error)
	BoardCards(ctx context.Context, boardID string) ([]*models.Card, error)
	CardMovements(ctx context.Context, cardID string) ([]models.CardMovement, error)
}

type BoardInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// Client is a minimal Trello REST client covering the calls the reporter
// needs. Authentication uses the key/token query parameters; the secret
// pair is carried for credential completeness but not sent per request.
type Client struct {
	baseURL string
	creds   structures.Credentials
	http    *http.Client
	logger  providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	baseURL := conf.Trello.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := conf.Trello.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		creds:   conf.Trello.Credentials,
		http: &http.Client{
			Timeout:   timeout,
			Transport: providers.NewMetricsTransport(metrics, nil),
		},
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.creds.APIKey)
	query.Set("token", c.creds.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

func (c *Client) Board(ctx context.Context, boardID string) (*BoardInfo, error) {
	c.logger.Debugf(providers.TypeFetch, "Retrieving board with id: %s", boardID)
	var info BoardInfo
	query := url.Values{"fields": {"id,name,closed"}}
	if err := c.get(ctx, "/boards/"+boardID, query, &info); err != nil {
		return nil, fmt.Errorf("no board found with id %s: %w", boardID, err)
	}
	return &info, nil
}

func (c *Client) BoardMembers(ctx context.Context, boardID string) ([]models.Member, error) {
	c.logger.Debugf(providers.TypeFetch, "Retrieving member data for board: %s", boardID)
	var members []models.Member
	query := url.Values{"fields": {"id,username"}}
	if err := c.get(ctx, "/boards/"+boardID+"/members", query, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// BoardCards fetches both the current and the archived cards of a board.
func (c *Client) BoardCards(ctx context.Context, boardID string) ([]*models.Card, error) {
	c.logger.Debugf(providers.TypeFetch, "Retrieving cards for board: %s", boardID)
	query := url.Values{"fields": {"id,name,desc,closed,idMembers,dateLastActivity"}}

	var open []*models.Card
	if err := c.get(ctx, "/boards/"+boardID+"/cards/open", query, &open); err != nil {
		return nil, err
	}

	var closed []*models.Card
	if err := c.get(ctx, "/boards/"+boardID+"/cards/closed", query, &closed); err != nil {
		return nil, err
	}

	return append(closed, open...), nil
}

type cardAction struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Data struct {
		ListBefore struct {
			Name string `json:"name"`
		} `json:"listBefore"`
		ListAfter struct {
			Name string `json:"name"`
		} `json:"listAfter"`
	} `json:"data"`
}

// CardMovements fetches all list movements of a card, paginating with
// the "before" cursor until a short page signals the end.
func (c *Client) CardMovements(ctx context.Context, cardID string) ([]models.CardMovement, error) {
	var movements []models.CardMovement
	before := ""

	for {
		query := url.Values{
			"filter": {"updateCard:idList"},
			"limit":  {fmt.Sprintf("%d", actionsPageLimit)},
		}
		if before != "" {
			query.Set("before", before)
		}

		var page []cardAction
		if err := c.get(ctx, "/cards/"+cardID+"/actions", query, &page); err != nil {
			return nil, err
		}

		for _, action := range page {
			movements = append(movements, models.CardMovement{
				Source:      action.Data.ListBefore.Name,
				Destination: action.Data.ListAfter.Name,
				Date:        action.Date,
			})
		}

		if len(page) < actionsPageLimit {
			return movements, nil
		}
		before = page[len(page)-1].ID
	}
}
