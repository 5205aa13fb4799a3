package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
)

func adminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage products and orders (requires login)",
	}
	cmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		adminProductsCmd(a),
		adminAddCmd(a),
		adminEditCmd(a),
		adminDeleteCmd(a),
		adminOrdersCmd(a),
		adminDeleteOrderCmd(a),
	)
	return cmd
}

// gated runs fn once the session gate allows it. Without a credential the
// user is asked to log in first and the command then resumes.
func (a *app) gated(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d := a.gate.Check(cmd.Context(), a.creds, cmd.CommandPath())
		if !d.Allowed {
			fmt.Fprintf(cmd.ErrOrStderr(), "Login required for %s.\n", a.cfg.APIURL)
			if err := a.interactiveLogin(cmd.Context(), "", ""); err != nil {
				return err
			}
		}
		return fn(cmd, args)
	}
}

func (a *app) interactiveLogin(ctx context.Context, username, password string) error {
	var err error
	if username == "" {
		if username, err = a.prompt("Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.secret("Password: "); err != nil {
			return err
		}
	}
	if _, err := a.gate.Login(ctx, a.creds, username, password, ""); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func loginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and store the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.interactiveLogin(cmd.Context(), username, password)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (prompted if empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (prompted if empty)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored admin credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.gate.Logout(cmd.Context(), a.creds); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func adminProductsCmd(a *app) *cobra.Command {
	var category, search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List every product",
		Args:  cobra.NoArgs,
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			c := catalog.NewCoordinator(a.client, "admin", a.log)
			if err := c.Fetch(cmd.Context(), nil); err != nil {
				return err
			}
			return a.printProducts(catalog.FilterLocal(c.Products(), category, search))
		}),
	}
	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "exact category, or all")
	cmd.Flags().StringVarP(&search, "search", "s", "", "name substring")
	return cmd
}

type productFlags struct {
	form   product.Form
	images []string
}

func (pf *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.form.Name, "name", "", "product name")
	cmd.Flags().StringVar(&pf.form.Price, "price", "", "price")
	cmd.Flags().StringVar(&pf.form.Size, "size", "", "size")
	cmd.Flags().StringVar(&pf.form.Category, "category", "", "category: Saree, Salwar Kurti, Nighty, Pickle or Masala")
	cmd.Flags().StringVar(&pf.form.Material, "material", "", "material")
	cmd.Flags().StringArrayVar(&pf.images, "image", nil, "image file; repeat for more, the first is the default")
}

// overlay copies the flags the user actually set onto f.
func (pf *productFlags) overlay(cmd *cobra.Command, f product.Form) product.Form {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &f.Name, pf.form.Name)
	set("price", &f.Price, pf.form.Price)
	set("size", &f.Size, pf.form.Size)
	set("category", &f.Category, pf.form.Category)
	set("material", &f.Material, pf.form.Material)
	return f
}

func readImages(paths []string) ([]product.Attachment, error) {
	var out []product.Attachment
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		out = append(out, product.Attachment{
			Filename:    filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Data:        data,
		})
	}
	return out, nil
}

func (a *app) runEditor(cmd *cobra.Command, ed *product.Editor, pf *productFlags) error {
	defer ed.Close()
	ed.SetFields(pf.overlay(cmd, ed.Form()))
	if len(pf.images) > 0 {
		imgs, err := readImages(pf.images)
		if err != nil {
			return err
		}
		ed.Stage(imgs...)
	}
	saved, err := ed.Submit(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ed.Status().Message)
		return err
	}
	if a.asJSON {
		return a.printJSON(saved)
	}
	fmt.Fprintln(a.out, ed.Status().Message)
	if saved != nil {
		fmt.Fprintf(a.out, "  id: %s\n", saved.ID)
	}
	return nil
}

func adminAddCmd(a *app) *cobra.Command {
	pf := &productFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			return a.runEditor(cmd, product.NewCreator(a.client, product.EditorOptions{Logger: a.log}), pf)
		}),
	}
	pf.bind(cmd)
	return cmd
}

func adminEditCmd(a *app) *cobra.Command {
	pf := &productFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			ed := product.NewEditor(a.client, args[0], product.EditorOptions{Logger: a.log})
			if err := ed.Load(cmd.Context()); err != nil {
				return err
			}
			return a.runEditor(cmd, ed, pf)
		}),
	}
	pf.bind(cmd)
	return cmd
}

// confirmed asks before a destructive step unless --yes was given.
func (a *app) confirmed(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	return a.confirm(question)
}

func adminDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			list := catalog.NewCoordinator(a.client, "admin", a.log)
			r := product.NewRemover(a.client, list, a.log)
			r.Mark(args[0])
			ok, err := a.confirmed(yes, fmt.Sprintf("Delete product %s?", args[0]))
			if err != nil || !ok {
				r.Cancel()
				if err == nil {
					fmt.Fprintln(a.out, "Cancelled.")
				}
				return err
			}
			if err := r.Confirm(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Product deleted.")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func adminOrdersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List every order",
		Args:  cobra.NoArgs,
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			b := order.NewBoard(a.client, a.log)
			if err := b.Load(cmd.Context()); err != nil {
				return err
			}
			return a.printOrders(b.Orders())
		}),
	}
}

func adminDeleteOrderCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-order <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: a.gated(func(cmd *cobra.Command, args []string) error {
			b := order.NewBoard(a.client, a.log)
			b.Mark(args[0])
			ok, err := a.confirmed(yes, fmt.Sprintf("Delete order %s?", args[0]))
			if err != nil || !ok {
				b.Cancel()
				if err == nil {
					fmt.Fprintln(a.out, "Cancelled.")
				}
				return err
			}
			if err := b.Confirm(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Order deleted.")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
