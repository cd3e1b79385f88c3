package mcpserver

import (
	"context"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/perchard/gitlab-mr-mcp/internal/gitlab"
)

// --- Tool Handlers ---

// Handlers return either a payload for successResult or an *opError for
// failureResult. Argument presence and types are already checked against
// the tool schema before a handler runs.

func (s *Server) handleGetProjects(ctx context.Context, args map[string]any) (any, error) {
	filters := gitlab.ProjectFilters{
		MinAccessLevel: s.cfg.MinAccessLevel,
		Search:         s.cfg.ProjectSearchTerm,
	}
	projects, err := s.client.ListProjects(ctx, filters)
	if err != nil {
		return nil, providerError("Failed to fetch projects", err)
	}
	if len(projects) == 0 {
		return "No projects found.", nil
	}
	if argVerbose(args) {
		return projects, nil
	}
	return pickFieldsList(projects, projectFields)
}

func (s *Server) handleListOpenMergeRequests(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	mrs, err := s.client.ListOpenMergeRequests(ctx, projectID)
	if err != nil {
		return nil, providerError("Failed to fetch merge requests", err)
	}
	if argVerbose(args) {
		return mrs, nil
	}
	return pickFieldsList(mrs, mergeRequestFields)
}

func (s *Server) handleGetMergeRequestDetails(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	mr, err := s.client.GetMergeRequest(ctx, projectID, iid)
	if err != nil {
		return nil, providerError("Failed to fetch merge request details", err)
	}
	if argVerbose(args) {
		return mr, nil
	}
	return pickFields(mr, mergeRequestDetailFields)
}

func (s *Server) handleGetMergeRequestComments(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	discussions, err := s.client.ListMergeRequestDiscussions(ctx, projectID, iid)
	if err != nil {
		return nil, providerError("Failed to fetch merge request comments", err)
	}
	if argVerbose(args) {
		return discussions, nil
	}
	return partitionComments(discussions), nil
}

func (s *Server) handleAddMergeRequestComment(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	comment, err := argString(args, "comment")
	if err != nil {
		return nil, err
	}
	discussion, err := s.client.CreateMergeRequestDiscussion(ctx, projectID, iid, comment, nil)
	if err != nil {
		return nil, providerError("Failed to add comment", err)
	}
	return discussion, nil
}

func (s *Server) handleAddMergeRequestDiffComment(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	comment, err := argString(args, "comment")
	if err != nil {
		return nil, err
	}
	baseSHA, err := argString(args, "base_sha")
	if err != nil {
		return nil, err
	}
	startSHA, err := argString(args, "start_sha")
	if err != nil {
		return nil, err
	}
	headSHA, err := argString(args, "head_sha")
	if err != nil {
		return nil, err
	}
	filePath, err := argString(args, "file_path")
	if err != nil {
		return nil, err
	}
	line, err := argLine(args, "line_number")
	if err != nil {
		return nil, err
	}

	// A single-file line annotation, not a rename: old and new path carry
	// the same value.
	position := &gl.PositionOptions{
		BaseSHA:      gl.Ptr(baseSHA),
		StartSHA:     gl.Ptr(startSHA),
		HeadSHA:      gl.Ptr(headSHA),
		OldPath:      gl.Ptr(filePath),
		NewPath:      gl.Ptr(filePath),
		PositionType: gl.Ptr("text"),
		NewLine:      gl.Ptr(line),
	}
	discussion, err := s.client.CreateMergeRequestDiscussion(ctx, projectID, iid, comment, position)
	if err != nil {
		return nil, providerError("Failed to add diff comment", err)
	}
	return discussion, nil
}

func (s *Server) handleGetMergeRequestDiff(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	diffs, err := s.client.ListMergeRequestDiffs(ctx, projectID, iid)
	if err != nil {
		return nil, providerError("Failed to fetch diff data", err)
	}
	if len(diffs) == 0 {
		return "No diff data available for this merge request.", nil
	}
	// Diffs have no reduced projection; the list is returned verbatim.
	return diffs, nil
}

func (s *Server) handleGetIssueDetails(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	issueIID, err := argIID(args, "issue_iid")
	if err != nil {
		return nil, err
	}
	issue, err := s.client.GetIssue(ctx, projectID, issueIID)
	if err != nil {
		return nil, providerError("Failed to fetch issue details", err)
	}
	if argVerbose(args) {
		return issue, nil
	}
	return pickFields(issue, issueFields)
}

func (s *Server) handleSetMergeRequestDescription(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	description, err := argString(args, "description")
	if err != nil {
		return nil, err
	}
	opts := &gl.UpdateMergeRequestOptions{Description: gl.Ptr(description)}
	mr, err := s.client.UpdateMergeRequest(ctx, projectID, iid, opts)
	if err != nil {
		return nil, providerError("Failed to update merge request description", err)
	}
	return mr, nil
}

func (s *Server) handleSetMergeRequestTitle(ctx context.Context, args map[string]any) (any, error) {
	projectID, err := argString(args, "project_id")
	if err != nil {
		return nil, err
	}
	iid, err := argIID(args, "merge_request_iid")
	if err != nil {
		return nil, err
	}
	title, err := argString(args, "title")
	if err != nil {
		return nil, err
	}
	opts := &gl.UpdateMergeRequestOptions{Title: gl.Ptr(title)}
	mr, err := s.client.UpdateMergeRequest(ctx, projectID, iid, opts)
	if err != nil {
		return nil, providerError("Failed to update merge request title", err)
	}
	return mr, nil
}
