package linear

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ProjectDirectory is the lookup capability project resolution needs. The
// Client implements it; tests substitute fakes.
type ProjectDirectory interface {
	// Project looks a project up by canonical id or slug, returning
	// ErrProjectNotFound for unknown references.
	Project(ctx context.Context, ref string) (*ResolvedProject, error)

	// Projects lists every visible project.
	Projects(ctx context.Context) ([]Project, error)

	// ProjectTeams fetches the teams owning a project.
	ProjectTeams(ctx context.Context, projectID string) ([]Team, error)
}

// lookupOutcome tags the result of one resolution attempt, so the
// fall-through policy is an explicit branch instead of nested error
// suppression.
type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupNotFound
	lookupFailed
)

type lookupResult struct {
	outcome lookupOutcome
	project ResolvedProject
}

// ResolveProject turns a user-supplied project reference (a true id, a
// slug, or a display name) into a canonical project identifier. It never
// fails:
//
//  1. a direct lookup by id/slug wins when it succeeds;
//  2. otherwise every project is listed and scanned for a case-insensitive
//     exact match on display name;
//  3. when no match is found, or the listing itself failed, the original
//     reference is passed through verbatim and the remote service is left
//     to reject it if it is truly invalid.
func ResolveProject(ctx context.Context, api ProjectDirectory, ref string) ResolvedProject {
	if direct := lookupByRef(ctx, api, ref); direct.outcome == lookupFound {
		return direct.project
	}

	// Both a miss and a lookup error fall through to the name scan.
	if byName := lookupByName(ctx, api, ref); byName.outcome == lookupFound {
		return byName.project
	}

	// Final fallback: the reference as given, teams unknown.
	return ResolvedProject{ID: ref}
}

func lookupByRef(ctx context.Context, api ProjectDirectory, ref string) lookupResult {
	project, err := api.Project(ctx, ref)
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return lookupResult{outcome: lookupNotFound}
	case err != nil:
		return lookupResult{outcome: lookupFailed}
	}
	return lookupResult{outcome: lookupFound, project: *project}
}

func lookupByName(ctx context.Context, api ProjectDirectory, ref string) lookupResult {
	projects, err := api.Projects(ctx)
	if err != nil {
		// Name-search trouble must never hard-fail resolution; the
		// worst outcome is passing the reference through unchanged.
		return lookupResult{outcome: lookupFailed}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return lookupResult{outcome: lookupFound, project: ResolvedProject{ID: p.ID}}
		}
	}
	return lookupResult{outcome: lookupNotFound}
}

// ResolveTeamID determines the owning team for issue creation. An explicit
// team id is authoritative and bypasses all validation. Otherwise the
// project's teams decide: exactly one team is used, zero or several is a
// surfaced error — unlike project resolution there is no safe verbatim
// fallback, since creating an issue against a wrong team is worse than
// failing loudly.
func ResolveTeamID(ctx context.Context, api ProjectDirectory, project ResolvedProject, explicitTeamID string) (string, error) {
	if explicitTeamID != "" {
		return explicitTeamID, nil
	}

	// Team ids already known from the direct project lookup.
	if len(project.TeamIDs) == 1 {
		return project.TeamIDs[0], nil
	}
	if len(project.TeamIDs) > 1 {
		return "", &APIError{Messages: []string{"project belongs to multiple teams; please specify a team ID"}}
	}

	teams, err := api.ProjectTeams(ctx, project.ID)
	if err != nil {
		return "", fmt.Errorf("failed to determine team ID: %w", err)
	}
	switch len(teams) {
	case 0:
		return "", &APIError{Messages: []string{"no teams found for the project; please specify a team ID"}}
	case 1:
		return teams[0].ID, nil
	default:
		return "", &APIError{Messages: []string{"project belongs to multiple teams; please specify a team ID"}}
	}
}
