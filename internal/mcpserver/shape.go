package mcpserver

import (
	"encoding/json"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// Field sets for the filtered projections. Each names exactly the JSON keys
// the non-verbose output carries; a key absent from the raw result stays
// absent rather than being invented.

var projectFields = []string{
	"id",
	"description",
	"name",
	"path",
	"path_with_namespace",
	"web_url",
	"default_branch",
}

var mergeRequestFields = []string{
	"id",
	"iid",
	"project_id",
	"title",
	"description",
	"state",
	"web_url",
	"source_branch",
	"target_branch",
	"merge_status",
	"detailed_merge_status",
}

var mergeRequestDetailFields = []string{
	"title",
	"description",
	"state",
	"web_url",
	"source_branch",
	"target_branch",
	"merge_status",
	"detailed_merge_status",
	"diff_refs",
}

var issueFields = []string{
	"title",
	"description",
}

// pickFields projects v onto the named fields by round-tripping through its
// JSON form. The input is never mutated; fields missing from the serialized
// value are left out of the projection.
func pickFields(v any, fields []string) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := full[field]; ok {
			out[field] = value
		}
	}
	return out, nil
}

// pickFieldsList applies pickFields to every element, preserving order and
// multiplicity.
func pickFieldsList[T any](items []T, fields []string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, err := pickFields(item, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

type commentNote struct {
	ID          int    `json:"id"`
	NoteableIID int    `json:"noteable_iid"`
	Body        string `json:"body"`
	AuthorName  string `json:"author_name"`
}

type diffNote struct {
	commentNote
	Position *gl.NotePosition `json:"position"`
}

type partitionedComments struct {
	DiscussionNotes []commentNote `json:"discussion_notes"`
	DiffNotes       []diffNote    `json:"diff_notes"`
}

// partitionComments flattens discussion threads to individual notes, keeps
// only unresolved ones, and splits them by kind. Resolved notes and
// non-resolvable kinds (system notes) are dropped.
func partitionComments(discussions []*gl.Discussion) partitionedComments {
	out := partitionedComments{
		DiscussionNotes: []commentNote{},
		DiffNotes:       []diffNote{},
	}
	for _, discussion := range discussions {
		for _, note := range discussion.Notes {
			if !note.Resolvable || note.Resolved {
				continue
			}
			shaped := commentNote{
				ID:          note.ID,
				NoteableIID: note.NoteableIID,
				Body:        note.Body,
				AuthorName:  note.Author.Name,
			}
			if note.Type == gl.DiffNote {
				out.DiffNotes = append(out.DiffNotes, diffNote{commentNote: shaped, Position: note.Position})
			} else {
				out.DiscussionNotes = append(out.DiscussionNotes, shaped)
			}
		}
	}
	return out
}
