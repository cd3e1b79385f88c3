// Package gitlab wraps the GitLab REST API behind the narrow surface the MCP
// tools call. The Client interface exists so tool handlers can be tested
// against a mock; APIClient is the production implementation over the
// official client library.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// ProjectFilters narrows which projects ListProjects returns. Zero values
// mean no filter; membership scoping is always applied.
type ProjectFilters struct {
	MinAccessLevel int
	Search         string
}

// BasicMergeRequest is the list shape of a merge request. It wraps the
// client-go struct to carry the coarse merge_status field, which the REST
// API still returns but client-go v0.124.0 and later no longer decode.
type BasicMergeRequest struct {
	gl.BasicMergeRequest
	MergeStatus string `json:"merge_status"`
}

// MergeRequest is the detail shape, with the same merge_status recapture.
type MergeRequest struct {
	gl.MergeRequest
	MergeStatus string `json:"merge_status"`
}

// UnmarshalJSON decodes through the embedded type's own unmarshaler first;
// the promoted method would otherwise consume the document without filling
// merge_status.
func (m *MergeRequest) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &m.MergeRequest); err != nil {
		return err
	}
	var extra struct {
		MergeStatus string `json:"merge_status"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	m.MergeStatus = extra.MergeStatus
	return nil
}

// Client abstracts the GitLab operations used by the MCP tools.
type Client interface {
	// ListProjects returns the projects the token's user is a member of.
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*gl.Project, error)

	// ListOpenMergeRequests returns a project's merge requests in state "opened".
	ListOpenMergeRequests(ctx context.Context, projectID string) ([]*BasicMergeRequest, error)

	// GetMergeRequest returns one merge request by its project-scoped IID.
	GetMergeRequest(ctx context.Context, projectID string, mrIID int) (*MergeRequest, error)

	// ListMergeRequestDiscussions returns all discussion threads on a merge request.
	ListMergeRequestDiscussions(ctx context.Context, projectID string, mrIID int) ([]*gl.Discussion, error)

	// CreateMergeRequestDiscussion starts a new discussion thread. A nil
	// position creates a plain comment; a non-nil position anchors the
	// comment to a diff line.
	CreateMergeRequestDiscussion(ctx context.Context, projectID string, mrIID int, body string, position *gl.PositionOptions) (*gl.Discussion, error)

	// ListMergeRequestDiffs returns the per-file diffs of a merge request.
	ListMergeRequestDiffs(ctx context.Context, projectID string, mrIID int) ([]*gl.MergeRequestDiff, error)

	// GetIssue returns one issue by its project-scoped IID.
	GetIssue(ctx context.Context, projectID string, issueIID int) (*gl.Issue, error)

	// UpdateMergeRequest edits merge request fields such as title or description.
	UpdateMergeRequest(ctx context.Context, projectID string, mrIID int, opts *gl.UpdateMergeRequestOptions) (*MergeRequest, error)
}

// APIClient implements Client against a live GitLab instance.
type APIClient struct {
	gl *gl.Client
}

// NewClient creates an APIClient authenticated with the given token. An
// empty host uses gitlab.com; otherwise host is the base URL of the
// instance.
func NewClient(token, host string) (*APIClient, error) {
	var opts []gl.ClientOptionFunc
	if host != "" {
		opts = append(opts, gl.WithBaseURL(host))
	}
	client, err := gl.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("gitlab: create client: %w", err)
	}
	return &APIClient{gl: client}, nil
}

func (c *APIClient) ListProjects(ctx context.Context, filters ProjectFilters) ([]*gl.Project, error) {
	opts := &gl.ListProjectsOptions{
		Membership: gl.Ptr(true),
	}
	if filters.MinAccessLevel > 0 {
		opts.MinAccessLevel = gl.Ptr(gl.AccessLevelValue(filters.MinAccessLevel))
	}
	if filters.Search != "" {
		opts.Search = gl.Ptr(filters.Search)
	}
	projects, _, err := c.gl.Projects.ListProjects(opts, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab: list projects: %w", err)
	}
	return projects, nil
}

// Merge request payloads are requested directly and decoded into the
// wrapper types; the typed service methods would decode into the client-go
// structs and lose merge_status.
func (c *APIClient) ListOpenMergeRequests(ctx context.Context, projectID string) ([]*BasicMergeRequest, error) {
	u := fmt.Sprintf("projects/%s/merge_requests", gl.PathEscape(projectID))
	opts := &gl.ListProjectMergeRequestsOptions{
		State: gl.Ptr("opened"),
	}
	req, err := c.gl.NewRequest(http.MethodGet, u, opts, []gl.RequestOptionFunc{gl.WithContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("gitlab: list open merge requests: %w", err)
	}
	var mrs []*BasicMergeRequest
	if _, err := c.gl.Do(req, &mrs); err != nil {
		return nil, fmt.Errorf("gitlab: list open merge requests: %w", err)
	}
	return mrs, nil
}

func (c *APIClient) GetMergeRequest(ctx context.Context, projectID string, mrIID int) (*MergeRequest, error) {
	u := fmt.Sprintf("projects/%s/merge_requests/%d", gl.PathEscape(projectID), mrIID)
	req, err := c.gl.NewRequest(http.MethodGet, u, nil, []gl.RequestOptionFunc{gl.WithContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("gitlab: get merge request: %w", err)
	}
	mr := new(MergeRequest)
	if _, err := c.gl.Do(req, mr); err != nil {
		return nil, fmt.Errorf("gitlab: get merge request: %w", err)
	}
	return mr, nil
}

func (c *APIClient) ListMergeRequestDiscussions(ctx context.Context, projectID string, mrIID int) ([]*gl.Discussion, error) {
	discussions, _, err := c.gl.Discussions.ListMergeRequestDiscussions(projectID, mrIID, nil, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab: list merge request discussions: %w", err)
	}
	return discussions, nil
}

func (c *APIClient) CreateMergeRequestDiscussion(ctx context.Context, projectID string, mrIID int, body string, position *gl.PositionOptions) (*gl.Discussion, error) {
	opts := &gl.CreateMergeRequestDiscussionOptions{
		Body:     gl.Ptr(body),
		Position: position,
	}
	discussion, _, err := c.gl.Discussions.CreateMergeRequestDiscussion(projectID, mrIID, opts, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab: create merge request discussion: %w", err)
	}
	return discussion, nil
}

func (c *APIClient) ListMergeRequestDiffs(ctx context.Context, projectID string, mrIID int) ([]*gl.MergeRequestDiff, error) {
	diffs, _, err := c.gl.MergeRequests.ListMergeRequestDiffs(projectID, mrIID, nil, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab: list merge request diffs: %w", err)
	}
	return diffs, nil
}

func (c *APIClient) GetIssue(ctx context.Context, projectID string, issueIID int) (*gl.Issue, error) {
	issue, _, err := c.gl.Issues.GetIssue(projectID, issueIID, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab: get issue: %w", err)
	}
	return issue, nil
}

func (c *APIClient) UpdateMergeRequest(ctx context.Context, projectID string, mrIID int, opts *gl.UpdateMergeRequestOptions) (*MergeRequest, error) {
	u := fmt.Sprintf("projects/%s/merge_requests/%d", gl.PathEscape(projectID), mrIID)
	req, err := c.gl.NewRequest(http.MethodPut, u, opts, []gl.RequestOptionFunc{gl.WithContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("gitlab: update merge request: %w", err)
	}
	mr := new(MergeRequest)
	if _, err := c.gl.Do(req, mr); err != nil {
		return nil, fmt.Errorf("gitlab: update merge request: %w", err)
	}
	return mr, nil
}
