package linear

// User represents a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Team represents a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Project represents a Linear project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// State represents a workflow state on an issue.
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityRef is a bare id reference nested inside another entity.
type EntityRef struct {
	ID string `json:"id"`
}

// Issue represents a Linear issue.
type Issue struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"` // 0=none, 1=urgent, 2=high, 3=medium, 4=low
	State       *State     `json:"state"`
	Team        *EntityRef `json:"team"`
	Project     *EntityRef `json:"project"`
	Assignee    *EntityRef `json:"assignee"`
	Creator     *EntityRef `json:"creator"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	URL         string     `json:"url"`
}

// IssueCreateInput carries the fields for the issueCreate mutation.
type IssueCreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"teamId"`
	ProjectID   string `json:"projectId"`
}

// ResolvedProject is the outcome of project resolution: the canonical id
// plus the owning team ids when the direct lookup supplied them. It is
// computed fresh on every resolution and never cached.
type ResolvedProject struct {
	ID      string
	TeamIDs []string
}

// Response shapes for the operations the CLI issues.

type viewerResponse struct {
	Viewer User `json:"viewer"`
}

type projectsResponse struct {
	Projects struct {
		Nodes []Project `json:"nodes"`
	} `json:"projects"`
}

type projectResponse struct {
	Project *struct {
		ID      string   `json:"id"`
		TeamIDs []string `json:"teamIds"`
	} `json:"project"`
}

type projectTeamsResponse struct {
	Project *struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	} `json:"project"`
}

type issuesResponse struct {
	Issues struct {
		Nodes    []Issue `json:"nodes"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"issues"`
}

type issueCreateResponse struct {
	IssueCreate struct {
		Success bool  `json:"success"`
		Issue   Issue `json:"issue"`
	} `json:"issueCreate"`
}
