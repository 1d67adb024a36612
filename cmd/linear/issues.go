package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/royreznik/linear-cli/internal/linear"
	"github.com/royreznik/linear-cli/internal/ui"
)

var (
	issuesProject     string
	createTitle       string
	createDescription string
	createProject     string
	createTeamID      string
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Issue commands",
}

var issuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Long: `List issues.

With --project only issues for that project are shown. Without it the
default project is used when one is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authSvc.Client()
		if err != nil {
			return err
		}

		ref, err := projectRefOrDefault(issuesProject)
		if err != nil {
			return err
		}

		ctx, cancel := apiContext()
		defer cancel()

		var projectID string
		if ref != "" {
			projectID = linear.ResolveProject(ctx, client, ref).ID
		}

		issues, err := client.Issues(ctx, projectID)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Println(ui.WarnStyle.Render("No issues found"))
			return nil
		}

		table := ui.NewTable("Linear Issues", "ID", "Title", "State", "Priority")
		for _, issue := range issues {
			state := ""
			if issue.State != nil {
				state = issue.State.Name
			}
			priority := "-"
			if issue.Priority > 0 {
				priority = fmt.Sprintf("P%d", issue.Priority)
			}
			table.AddRow(issue.ID, issue.Title, state, priority)
		}
		table.Render(os.Stdout)
		return nil
	},
}

var issuesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new issue",
	Long: `Create a new issue.

Without --project the default project is used when one is set. The team is
derived from the project unless --team-id is given; a project owned by
several teams requires an explicit --team-id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authSvc.Client()
		if err != nil {
			return err
		}

		ref, err := projectRefOrDefault(createProject)
		if err != nil {
			return err
		}
		if ref == "" {
			return fmt.Errorf("no project specified and no default project set; " +
				"use --project or 'linear projects set-default'")
		}

		ctx, cancel := apiContext()
		defer cancel()

		project := linear.ResolveProject(ctx, client, ref)
		teamID, err := linear.ResolveTeamID(ctx, client, project, createTeamID)
		if err != nil {
			return err
		}

		issue, err := client.CreateIssue(ctx, linear.IssueCreateInput{
			Title:       createTitle,
			Description: createDescription,
			TeamID:      teamID,
			ProjectID:   project.ID,
		})
		if err != nil {
			return err
		}

		fmt.Println(ui.PassStyle.Render("Issue created successfully: ") + issue.Title)
		fmt.Println(ui.AccentStyle.Render("ID: ") + issue.ID)
		if issue.URL != "" {
			fmt.Println(ui.AccentStyle.Render("URL: ") + issue.URL)
		}
		return nil
	},
}

// projectRefOrDefault returns the explicit project reference, or the stored
// default project's id when none was given. Empty means neither exists.
func projectRefOrDefault(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	stored, err := projectStore.Get()
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", nil
	}
	fmt.Println(ui.AccentStyle.Render("Using default project: ") + stored.Name)
	return stored.ID, nil
}

func init() {
	issuesListCmd.Flags().StringVarP(&issuesProject, "project", "p", "", "filter issues by project name, ID, or slug")

	issuesCreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "issue title (required)")
	issuesCreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "issue description")
	issuesCreateCmd.Flags().StringVarP(&createProject, "project", "p", "", "project name, ID, or slug (uses default if not specified)")
	issuesCreateCmd.Flags().StringVar(&createTeamID, "team-id", "", "team ID (optional if the project belongs to only one team)")
	_ = issuesCreateCmd.MarkFlagRequired("title")

	issuesCmd.AddCommand(issuesListCmd)
	issuesCmd.AddCommand(issuesCreateCmd)
	rootCmd.AddCommand(issuesCmd)
}
