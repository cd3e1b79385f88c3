package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// --- Tool Catalog ---

// operation ties one tool descriptor to its compiled input contract and its
// handler. Catalog order below is the order tools are advertised in.
type operation struct {
	tool    mcp.Tool
	schema  *jsonschema.Schema
	handler func(ctx context.Context, args map[string]any) (any, error)
}

func (s *Server) operations() ([]operation, error) {
	entries := []struct {
		tool    mcp.Tool
		handler func(ctx context.Context, args map[string]any) (any, error)
	}{
		{getProjectsTool(), s.handleGetProjects},
		{listOpenMergeRequestsTool(), s.handleListOpenMergeRequests},
		{getMergeRequestDetailsTool(), s.handleGetMergeRequestDetails},
		{getMergeRequestCommentsTool(), s.handleGetMergeRequestComments},
		{addMergeRequestCommentTool(), s.handleAddMergeRequestComment},
		{addMergeRequestDiffCommentTool(), s.handleAddMergeRequestDiffComment},
		{getMergeRequestDiffTool(), s.handleGetMergeRequestDiff},
		{getIssueDetailsTool(), s.handleGetIssueDetails},
		{setMergeRequestDescriptionTool(), s.handleSetMergeRequestDescription},
		{setMergeRequestTitleTool(), s.handleSetMergeRequestTitle},
	}

	ops := make([]operation, 0, len(entries))
	for _, entry := range entries {
		schema, err := compileToolSchema(entry.tool)
		if err != nil {
			return nil, err
		}
		ops = append(ops, operation{tool: entry.tool, schema: schema, handler: entry.handler})
	}
	return ops, nil
}

// compileToolSchema turns a tool's declared input schema into a validator,
// so every invocation is checked against the same contract the tool
// advertises.
func compileToolSchema(tool mcp.Tool) (*jsonschema.Schema, error) {
	schema, err := jsonschema.CompileString(tool.Name+".json", string(tool.RawInputSchema))
	if err != nil {
		return nil, fmt.Errorf("compile input schema for %s: %w", tool.Name, err)
	}
	return schema, nil
}

// --- Tool Definitions ---

func getProjectsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"get_projects",
		"List the projects the authenticated user is a member of, with id, name, path and other identifying fields.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"verbose": {
					"type": "boolean",
					"description": "If true, returns the full provider response instead of the filtered fields. Defaults to false.",
					"default": false
				}
			}
		}`),
	)
}

func listOpenMergeRequestsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"list_open_merge_requests",
		"List all open merge requests in a project.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"verbose": {
					"type": "boolean",
					"description": "If true, returns the full provider response instead of the filtered fields. Defaults to false.",
					"default": false
				}
			},
			"required": ["project_id"]
		}`),
	)
}

func getMergeRequestDetailsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"get_merge_request_details",
		"Get details of a merge request such as title, description, branches and merge status.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"verbose": {
					"type": "boolean",
					"description": "If true, returns the full provider response instead of the filtered fields. Defaults to false.",
					"default": false
				}
			},
			"required": ["project_id", "merge_request_iid"]
		}`),
	)
}

func getMergeRequestCommentsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"get_merge_request_comments",
		"Get the unresolved discussion and file diff comments of a merge request.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"verbose": {
					"type": "boolean",
					"description": "If true, returns the raw discussion list instead of the partitioned unresolved notes. Defaults to false.",
					"default": false
				}
			},
			"required": ["project_id", "merge_request_iid"]
		}`),
	)
}

func addMergeRequestCommentTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"add_merge_request_comment",
		"Add a general comment to a merge request.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"comment": {
					"type": "string",
					"description": "The comment text"
				}
			},
			"required": ["project_id", "merge_request_iid", "comment"]
		}`),
	)
}

func addMergeRequestDiffCommentTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"add_merge_request_diff_comment",
		"Add a comment to a merge request at a specific line in a file diff.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"comment": {
					"type": "string",
					"description": "The comment text"
				},
				"base_sha": {
					"type": "string",
					"description": "The SHA of the base commit"
				},
				"start_sha": {
					"type": "string",
					"description": "The SHA of the start commit"
				},
				"head_sha": {
					"type": "string",
					"description": "The SHA of the head commit"
				},
				"file_path": {
					"type": "string",
					"description": "The path of the file to comment on"
				},
				"line_number": {
					"type": "string",
					"description": "The line number in the new version of the file"
				}
			},
			"required": ["project_id", "merge_request_iid", "comment", "base_sha", "start_sha", "head_sha", "file_path", "line_number"]
		}`),
	)
}

func getMergeRequestDiffTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"get_merge_request_diff",
		"Get the file diffs of a merge request.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				}
			},
			"required": ["project_id", "merge_request_iid"]
		}`),
	)
}

func getIssueDetailsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"get_issue_details",
		"Get details of an issue within a project.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"issue_iid": {
					"type": "integer",
					"description": "The internal ID of the issue within the project"
				},
				"verbose": {
					"type": "boolean",
					"description": "If true, returns the full provider response instead of the filtered fields. Defaults to false.",
					"default": false
				}
			},
			"required": ["project_id", "issue_iid"]
		}`),
	)
}

func setMergeRequestDescriptionTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"set_merge_request_description",
		"Set the description of a merge request.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"description": {
					"type": "string",
					"description": "The new description of the merge request"
				}
			},
			"required": ["project_id", "merge_request_iid", "description"]
		}`),
	)
}

func setMergeRequestTitleTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"set_merge_request_title",
		"Set the title of a merge request.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_id": {
					"type": "string",
					"description": "The project ID"
				},
				"merge_request_iid": {
					"type": "integer",
					"description": "The internal ID of the merge request within the project"
				},
				"title": {
					"type": "string",
					"description": "The new title of the merge request"
				}
			},
			"required": ["project_id", "merge_request_iid", "title"]
		}`),
	)
}
