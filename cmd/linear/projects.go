package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/royreznik/linear-cli/internal/ui"
	"github.com/royreznik/linear-cli/internal/vault"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Project commands",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authSvc.Client()
		if err != nil {
			return err
		}

		ctx, cancel := apiContext()
		defer cancel()

		projects, err := client.Projects(ctx)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println(ui.WarnStyle.Render("No projects found"))
			return nil
		}

		table := ui.NewTable("Linear Projects", "ID", "Name", "State", "Description")
		for _, p := range projects {
			table.AddRow(p.ID, p.Name, p.State, p.Description)
		}
		table.Render(os.Stdout)
		return nil
	},
}

var projectsSetDefaultCmd = &cobra.Command{
	Use:   "set-default <project>",
	Short: "Set the default project for issue creation and listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := args[0]

		client, err := authSvc.Client()
		if err != nil {
			return err
		}

		ctx, cancel := apiContext()
		defer cancel()

		projects, err := client.Projects(ctx)
		if err != nil {
			return err
		}

		for _, p := range projects {
			if p.ID == ref || strings.EqualFold(p.Name, ref) {
				if err := projectStore.Save(vault.DefaultProject{ID: p.ID, Name: p.Name}); err != nil {
					return err
				}
				fmt.Println(ui.PassStyle.Render("Default project set to: ") + fmt.Sprintf("%s (%s)", p.Name, p.ID))
				return nil
			}
		}
		return fmt.Errorf("project not found: %s", ref)
	},
}

var projectsGetDefaultCmd = &cobra.Command{
	Use:   "get-default",
	Short: "Show the current default project",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := projectStore.Get()
		if err != nil {
			return err
		}
		if project == nil {
			fmt.Println(ui.WarnStyle.Render("No default project set"))
			return nil
		}
		fmt.Println(ui.PassStyle.Render("Default project: ") + fmt.Sprintf("%s (%s)", project.Name, project.ID))
		return nil
	},
}

var projectsClearDefaultCmd = &cobra.Command{
	Use:   "clear-default",
	Short: "Clear the default project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := projectStore.Clear(); err != nil {
			return err
		}
		fmt.Println(ui.PassStyle.Render("Default project cleared"))
		return nil
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsSetDefaultCmd)
	projectsCmd.AddCommand(projectsGetDefaultCmd)
	projectsCmd.AddCommand(projectsClearDefaultCmd)
	rootCmd.AddCommand(projectsCmd)
}
