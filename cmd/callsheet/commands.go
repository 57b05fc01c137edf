package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"callsheet/internal/export"
	"callsheet/internal/importer"
	"callsheet/internal/models"
	"callsheet/internal/workspace"

	"github.com/spf13/cobra"
)

func newImportCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the workspace with the contacts of an xlsx workbook",
		Long: "Reads the first sheet of an .xlsx workbook; row 1 holds the column names.\n" +
			"Legacy .xls files are not supported: save them as .xlsx first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := importer.DecodeWorkbook(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			contacts := importer.ImportRows(rows, nil)
			s.workspace.Import(contacts, filepath.Base(args[0]))

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts (%d rows skipped)\n",
				len(contacts), len(rows)-len(contacts))
			return nil
		},
	}
}

func newListCmd(open openFunc) *cobra.Command {
	var status, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show contacts, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != workspace.FilterAll && !models.Status(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			writeContacts(cmd.OutOrStdout(), s.workspace.Filter(status, search))
			c := s.workspace.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d total: %d pending, %d in progress, %d completed, %d no answer\n",
				c.Total, c.Pending, c.InProgress, c.Completed, c.NoAnswer)
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", workspace.FilterAll, "status filter (all, pending, in-progress, completed, no-answer)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "match name or phone")
	return cmd
}

func newAddCmd(open openFunc) *cobra.Command {
	var name, remark string
	cmd := &cobra.Command{
		Use:   "add PHONE",
		Short: "Add a contact at the top of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			c, ok := s.workspace.AddManual(name, args[0], remark)
			if !ok {
				return fmt.Errorf("phone %q has no digits", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) as %s\n", c.Name, c.Phone, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&remark, "remark", "r", "", "note")
	return cmd
}

func newUpdateCmd(open openFunc) *cobra.Command {
	var status, remark string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the status or remark of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch workspace.ContactPatch
			if cmd.Flags().Changed("status") {
				st, ok := models.LookupStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				patch.Status = &st
			}
			if cmd.Flags().Changed("remark") {
				patch.Remark = &remark
			}

			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			c, ok := s.workspace.Update(args[0], patch)
			if !ok {
				return fmt.Errorf("contact %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.Name, c.Status.Label())
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status")
	cmd.Flags().StringVarP(&remark, "remark", "r", "", "new remark")
	return cmd
}

func newRemoveCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.workspace.Remove(args[0]) {
				return fmt.Errorf("contact %s not found", args[0])
			}
			return nil
		},
	}
}

func newExportCmd(open openFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workspace to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			snap := s.workspace.Snapshot()
			data, err := export.Workbook(snap.Contacts)
			if err != nil {
				return err
			}
			if output == "" {
				output = export.FileName(snap.FileName)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d contacts to %s\n", len(snap.Contacts), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the imported file)")
	return cmd
}

func newResetCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the workspace and its saved snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			s.workspace.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Workspace cleared")
			return nil
		},
	}
}

func writeContacts(out io.Writer, contacts []models.Contact) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROW\tNAME\tPHONE\tSTATUS\tREMARK")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", c.ID, c.RowNumber, c.Name, c.Phone, c.Status.Label(), c.Remark)
	}
	tw.Flush()
}
