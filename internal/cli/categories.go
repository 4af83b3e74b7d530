package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// -------------- category subcommands ----------------

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat",
		Aliases: []string{"category", "categories"},
		Short:   "Manage categories",
		Args:    exactArgs(0, "cat <ls|add|rm>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(a, false)
		},
	}
	var collapsed bool
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List categories and their items",
		Args:  exactArgs(0, "cat ls [--collapsed]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(a, collapsed)
		},
	}
	ls.Flags().BoolVar(&collapsed, "collapsed", false, "hide items, show counts only")

	add := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a category",
		Args:  minArgs(1, "cat add <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.inv.AddCategory(a.ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("category added: %d. %s", c.Key, c.Value))
			return nil
		},
	}

	var yes bool
	rm := &cobra.Command{
		Use:   "rm KEY",
		Short: "Delete a category and all of its items",
		Args:  exactArgs(1, "cat rm <key> [-y]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("not a number: %s", args[0])
			}
			cats, err := a.inv.ListCategories(a.ctx)
			if err != nil {
				return err
			}
			var target *model.Category
			for i := range cats {
				if cats[i].Key == key {
					target = &cats[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("category key %d: %w", key, inventory.ErrNotFound)
			}
			if !yes {
				q := fmt.Sprintf("Delete the category %q and all its %d associated items? [y/N] ", target.Value, len(target.Items))
				if !confirm(a, cmd, q) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Current().Muted.Render("cancelled"))
					return nil
				}
			}
			if err := a.inv.DeleteCategory(a.ctx, key); err != nil {
				return err
			}
			ui.OK("category deleted: " + target.Value)
			return nil
		},
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(ls, add, rm)
	return cmd
}

func listCategories(a *app, collapsed bool) error {
	cats, err := a.inv.ListCategories(a.ctx)
	if err != nil {
		return err
	}
	ui.Panel(categoryLines(cats, collapsed))
	return nil
}

func confirm(a *app, cmd *cobra.Command, question string) bool {
	fmt.Fprint(cmd.OutOrStdout(), question)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
