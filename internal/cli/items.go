package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/store"
	"github.com/Makepad-fr/pantry/internal/tui"
	"github.com/Makepad-fr/pantry/internal/ui"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: pantry %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: pantry %s", usage)
		}
		return nil
	}
}

// -------------- item subcommands ----------------

func newListCmd(a *app) *cobra.Command {
	var categories []string
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items, optionally only from some categories",
		Args:    exactArgs(0, "ls [-c CATEGORY]... [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.inv.ListCategories(a.ctx)
			if err != nil {
				return err
			}
			entries := inventory.FilterItems(cats, categories)
			ui.Panel(listLines(entries, categories, group))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only show these categories (repeatable)")
	cmd.Flags().BoolVar(&group, "group", false, "group output by unchecked/checked")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  exactArgs(0, "tui [-c CATEGORY]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, category)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "start filtered to this category")
	return cmd
}

func runTUI(a *app, category string) error {
	opt := tui.Options{Category: category}
	if w, ok := a.kv.(store.Watcher); ok {
		ch, err := w.Watch(a.ctx, model.DocumentKey)
		if err == nil {
			opt.Changes = ch
		}
	}
	if err := tui.Run(a.ctx, a.inv, opt); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	var f model.ItemFields
	var image string
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add an item to a category",
		Args:  minArgs(1, `add <name...> -q <quantity> -c <category> [--image PATH]`),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Name = strings.Join(args, " ")
			ref, err := imageRef(image)
			if err != nil {
				return err
			}
			f.Image = ref
			it, err := a.inv.AddItem(a.ctx, f.Category, f)
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("item added: %s ×%s in %s (%s)", it.Name, it.Quantity, it.Category, shortID(it.ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.Quantity, "quantity", "q", "", "quantity (a number)")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "category name or id")
	cmd.Flags().StringVar(&image, "image", "", "picture file or URI")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var name, quantity, category, image string
	cmd := &cobra.Command{
		Use:   "edit CATEGORY ID",
		Short: "Change an item's name, quantity, category or picture",
		Args:  exactArgs(2, "edit <category> <id> [--name N] [-q Q] [-c C] [--image PATH]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, it, err := a.resolveItem(args[0], args[1])
			if err != nil {
				return err
			}
			f := it.Fields()
			fl := cmd.Flags()
			if fl.Changed("name") {
				f.Name = name
			}
			if fl.Changed("quantity") {
				f.Quantity = quantity
			}
			if fl.Changed("category") {
				f.Category = category
			}
			if fl.Changed("image") {
				if f.Image, err = imageRef(image); err != nil {
					return err
				}
			}
			updated, err := a.inv.UpdateItem(a.ctx, c.ID, it.ID, f)
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("item updated: %s ×%s in %s", updated.Name, updated.Quantity, updated.Category))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "new quantity")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&image, "image", "", "new picture file or URI (empty for the placeholder)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show CATEGORY ID",
		Short: "Show one item",
		Args:  exactArgs(2, "show <category> <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, it, err := a.resolveItem(args[0], args[1])
			if err != nil {
				return err
			}
			ui.Panel(detailLines(c, it))
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check CATEGORY ID",
		Short: "Toggle an item's checked flag",
		Args:  exactArgs(2, "check <category> <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, it, err := a.resolveItem(args[0], args[1])
			if err != nil {
				return err
			}
			on, err := a.inv.ToggleChecked(a.ctx, c.ID, it.ID)
			if err != nil {
				return err
			}
			if on {
				ui.OK("checked " + it.Name)
			} else {
				ui.OK("unchecked " + it.Name)
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CATEGORY ID",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    exactArgs(2, "rm <category> <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, it, err := a.resolveItem(args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.inv.DeleteItem(a.ctx, c.ID, it.ID); err != nil {
				return err
			}
			ui.OK("item deleted: " + it.Name)
			return nil
		},
	}
}

// resolveItem finds the category named by ref and the item whose id is or
// starts with prefix.
func (a *app) resolveItem(ref, prefix string) (model.Category, model.Item, error) {
	c, it, err := a.inv.FindItem(a.ctx, ref, prefix)
	if err == nil || !errors.Is(err, inventory.ErrNotFound) {
		return c, it, err
	}
	cats, err := a.inv.ListCategories(a.ctx)
	if err != nil {
		return model.Category{}, model.Item{}, err
	}
	c, ok := inventory.FindCategory(cats, ref)
	if !ok {
		return model.Category{}, model.Item{}, fmt.Errorf("category %q: %w", ref, inventory.ErrNotFound)
	}
	var matches []model.Item
	for _, it := range c.Items {
		if it.ID == prefix {
			return c, it, nil
		}
		if prefix != "" && strings.HasPrefix(it.ID, prefix) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return model.Category{}, model.Item{}, fmt.Errorf("item %q in %s: %w", prefix, c.Value, inventory.ErrNotFound)
	case 1:
		return c, matches[0], nil
	}
	return model.Category{}, model.Item{}, usagef("id prefix %q matches %d items in %s", prefix, len(matches), c.Value)
}

// imageRef turns a picked file into a file:// URI; URIs and asset
// references pass through untouched.
func imageRef(s string) (model.ImageRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.ImageRef{}, nil
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "asset:") {
		return model.ImageURI(s), nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("image path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ImageRef{}, usagef("image not found: %s", s)
		}
		return model.ImageRef{}, fmt.Errorf("image: %w", err)
	}
	return model.ImageURI("file://" + filepath.ToSlash(abs)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
