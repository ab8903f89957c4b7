package main

import (
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
	"github.com/notesapp/noteskit/internal/util"
)

func noteCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(
		noteListCmd(c),
		noteGetCmd(c),
		noteCreateCmd(c),
		noteUpdateCmd(c),
		noteDeleteCmd(c),
		noteSearchCmd(c),
	)
	return cmd
}

func noteListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := c.app.Notes.List(cmd.Context())
			if err != nil {
				return err
			}
			return printNoteTable(notes)
		},
	}
}

func noteGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Notes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printNote(cmd, n)
			return nil
		},
	}
}

func noteCreateCmd(c *cli) *cobra.Command {
	var (
		content  string
		category string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Notes.Create(cmd.Context(), args[0], content, category, tags)
			if err != nil {
				return err
			}
			cmd.Printf("Created note %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Note body")
	cmd.Flags().StringVar(&category, "category", "", "Note category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func noteUpdateCmd(c *cli) *cobra.Command {
	var (
		title    string
		content  string
		category string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Notes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				n.Title = title
			}
			if cmd.Flags().Changed("content") {
				n.Content = content
			}
			if cmd.Flags().Changed("category") {
				n.Category = category
			}
			if cmd.Flags().Changed("tag") {
				n.Tags = tags
			}
			n.LastModifiedUTC = time.Now().UTC()

			updated, err := c.app.Notes.Update(cmd.Context(), n)
			if err != nil {
				return err
			}
			cmd.Printf("Updated note %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replacement tag set (repeatable)")
	return cmd
}

func noteDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Notes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted note %s\n", args[0])
			return nil
		},
	}
}

func noteSearchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by title, content, category, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := c.app.Notes.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printNoteTable(notes)
		},
	}
}

func printNoteTable(notes []domainnote.Note) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if _, err := w.Write([]byte("ID\tTitle\tCategory\tModified\n")); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, n := range notes {
		row := strings.Join([]string{
			n.ID,
			n.Title,
			n.Category,
			util.FormatModified(n.LastModifiedUTC, now),
		}, "\t")
		if _, err := w.Write([]byte(row + "\n")); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printNote(cmd *cobra.Command, n domainnote.Note) {
	cmd.Printf("ID:       %s\n", n.ID)
	cmd.Printf("Title:    %s\n", n.Title)
	if n.Category != "" {
		cmd.Printf("Category: %s\n", n.Category)
	}
	if len(n.Tags) > 0 {
		cmd.Printf("Tags:     %s\n", strings.Join(n.Tags, ", "))
	}
	cmd.Printf("Modified: %s\n", n.LastModifiedUTC.Format(time.RFC3339))
	cmd.Printf("\n%s\n", n.Content)
}
