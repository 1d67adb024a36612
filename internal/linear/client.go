// Package linear is the gateway to the Linear GraphQL API: a thin client
// that executes queries and mutations, maps transport and GraphQL failures
// into a typed error taxonomy, and resolves user-supplied project
// references into canonical identifiers.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/royreznik/linear-cli/internal/config"
)

const (
	// apiKeyPrefix marks long-lived API keys, which Linear expects as a
	// bare Authorization header instead of a Bearer token.
	apiKeyPrefix = "lin_api_"

	// maxRetries bounds retry attempts for rate-limited requests. Other
	// failures, including timeouts, are never retried.
	maxRetries = 3
)

// GraphQLRequest is a GraphQL request payload.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLResponse is a generic GraphQL response envelope.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is a single entry in a GraphQL error list.
type GraphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

// Client executes operations against the Linear API.
type Client struct {
	Token        string
	Endpoint     string
	AuthEndpoint string
	HTTPClient   *http.Client
}

// NewClient creates a client for the endpoints in cfg, authenticating with
// token. An empty token is allowed; every authenticated call will then fail
// with an AuthError.
func NewClient(cfg *config.Config, token string) *Client {
	return &Client{
		Token:        token,
		Endpoint:     cfg.APIEndpoint,
		AuthEndpoint: cfg.AuthEndpoint,
		HTTPClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

// WithHTTPClient returns a copy of the client using the given HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	clone := *c
	clone.HTTPClient = httpClient
	return &clone
}

// WithToken returns a copy of the client authenticating with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.Token = token
	return &clone
}

// authorizationHeader formats the credential for the Authorization header.
func authorizationHeader(token string) string {
	if strings.HasPrefix(token, apiKeyPrefix) {
		return token
	}
	return "Bearer " + token
}

// Execute sends a GraphQL request and returns the raw data payload.
// HTTP 429 responses are retried with exponential backoff; every other
// failure maps straight into the error taxonomy: 401 to AuthError,
// transport failures to NetworkError, GraphQL error lists and remaining
// non-2xx statuses to APIError.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if c.Token == "" {
		return nil, &AuthError{Message: "authentication required: run 'linear auth login'"}
	}

	body, err := json.Marshal(&GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var data json.RawMessage
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", authorizationHeader(c.Token))

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return backoff.Permanent(&NetworkError{Err: err})
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return backoff.Permanent(&NetworkError{Err: err})
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("rate limited (status %d)", resp.StatusCode)
		case resp.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(&AuthError{Message: "authentication failed: please login again"})
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return backoff.Permanent(&APIError{Messages: []string{
				fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
			}})
		}

		var gqlResp GraphQLResponse
		if err := json.Unmarshal(respBody, &gqlResp); err != nil {
			return backoff.Permanent(&APIError{Messages: []string{
				fmt.Sprintf("malformed response: %v", err),
			}})
		}
		if len(gqlResp.Errors) > 0 {
			messages := make([]string, len(gqlResp.Errors))
			for i, e := range gqlResp.Errors {
				messages[i] = e.Message
			}
			return backoff.Permanent(&APIError{Messages: messages})
		}

		data = gqlResp.Data
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newRetryBackoff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return data, nil
}

// retryInitialInterval seeds the backoff for rate-limited requests.
var retryInitialInterval = time.Second

func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = 10 * time.Second
	return bo
}

// Viewer fetches the authenticated user's profile.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	query := `
		query Me {
			viewer {
				id
				name
				email
				displayName
				avatarUrl
				active
				createdAt
				updatedAt
			}
		}
	`
	data, err := c.Execute(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	var resp viewerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse user data: %v", err)}}
	}
	return &resp.Viewer, nil
}

// AuthenticatePassword exchanges an email and password for a session token
// at the OAuth token endpoint.
func (c *Client) AuthenticatePassword(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type": "password",
		"username":   email,
		"password":   password,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{Message: authFailureMessage(respBody, resp.StatusCode)}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", &AuthError{Message: "authentication failed: no access token received"}
	}
	return tokenResp.AccessToken, nil
}

func authFailureMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return "authentication failed: " + payload.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", status)
}

// Projects lists every project visible to the credential.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	query := `
		query Projects {
			projects {
				nodes {
					id
					name
					description
					state
					createdAt
					updatedAt
				}
			}
		}
	`
	data, err := c.Execute(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	var resp projectsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse projects data: %v", err)}}
	}
	return resp.Projects.Nodes, nil
}

// Project looks a project up by canonical id or slug. Display names are not
// resolvable here; callers fall back to ResolveProject for those. Returns
// ErrProjectNotFound when the service reports no such project.
func (c *Client) Project(ctx context.Context, ref string) (*ResolvedProject, error) {
	query := `
		query Project($id: String!) {
			project(id: $id) {
				id
				teamIds
			}
		}
	`
	data, err := c.Execute(ctx, query, map[string]any{"id": ref})
	if err != nil {
		return nil, err
	}
	var resp projectResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse project data: %v", err)}}
	}
	if resp.Project == nil || resp.Project.ID == "" {
		return nil, ErrProjectNotFound
	}
	return &ResolvedProject{ID: resp.Project.ID, TeamIDs: resp.Project.TeamIDs}, nil
}

// ProjectTeams fetches the teams owning a project.
func (c *Client) ProjectTeams(ctx context.Context, projectID string) ([]Team, error) {
	query := `
		query ProjectTeams($id: String!) {
			project(id: $id) {
				teams {
					nodes {
						id
						name
						key
					}
				}
			}
		}
	`
	data, err := c.Execute(ctx, query, map[string]any{"id": projectID})
	if err != nil {
		return nil, err
	}
	var resp projectTeamsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse teams data: %v", err)}}
	}
	if resp.Project == nil {
		return nil, nil
	}
	return resp.Project.Teams.Nodes, nil
}

// Issues lists issues, optionally filtered to a single project. projectID
// must already be a canonical identifier; use ResolveProject first for
// user-supplied references.
func (c *Client) Issues(ctx context.Context, projectID string) ([]Issue, error) {
	query := `
		query Issues($filter: IssueFilter) {
			issues(filter: $filter) {
				nodes {
					id
					title
					description
					priority
					state {
						id
						name
					}
					team {
						id
					}
					project {
						id
					}
					assignee {
						id
					}
					creator {
						id
					}
					createdAt
					updatedAt
					url
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}
	`
	variables := map[string]any{}
	if projectID != "" {
		variables["filter"] = map[string]any{
			"project": map[string]any{"id": map[string]any{"eq": projectID}},
		}
	}
	data, err := c.Execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	var resp issuesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse issues data: %v", err)}}
	}
	return resp.Issues.Nodes, nil
}

// CreateIssue issues the issueCreate mutation and returns the new issue.
func (c *Client) CreateIssue(ctx context.Context, input IssueCreateInput) (*Issue, error) {
	mutation := `
		mutation CreateIssue($input: IssueCreateInput!) {
			issueCreate(input: $input) {
				success
				issue {
					id
					title
					description
					priority
					state {
						id
						name
					}
					team {
						id
					}
					project {
						id
					}
					assignee {
						id
					}
					creator {
						id
					}
					createdAt
					updatedAt
					url
				}
			}
		}
	`
	data, err := c.Execute(ctx, mutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	var resp issueCreateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("failed to parse issue data: %v", err)}}
	}
	if !resp.IssueCreate.Success {
		return nil, &APIError{Messages: []string{"failed to create issue"}}
	}
	return &resp.IssueCreate.Issue, nil
}
