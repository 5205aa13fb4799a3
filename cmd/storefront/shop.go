package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/submission"
)

func homeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show a preview of every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := catalog.NewLanding(a.client, a.log)
			err := l.Refresh(cmd.Context())
			sections := l.Sections()
			if len(sections) == 0 && err != nil {
				return fmt.Errorf("load landing: %w", err)
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: some sections could not be loaded")
			}
			if a.asJSON {
				return a.printJSON(sections)
			}
			for _, s := range sections {
				fmt.Fprintf(a.out, "%s  (storefront browse %s)\n", s.Title, s.Slug)
				writeProducts(a.out, s.Products)
			}
			return nil
		},
	}
}

func browseCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "browse <category-slug>",
		Short: "List a category, optionally searching within it",
		Long: `List the products of a category.

--search takes free text; "under N" or "below N" in it sets a price ceiling:
  storefront browse sarees --search "silk under 2000"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.NewCoordinator(a.client, "cli", a.log)
			var err error
			if search != "" {
				err = c.Search(cmd.Context(), args[0], search)
			} else {
				err = c.Browse(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return a.printProducts(c.Products())
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search text")
	return cmd
}

func productCmd(a *app) *cobra.Command {
	var image int
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g := product.NewGallery(*p)
			if cmd.Flags().Changed("image") && !g.Select(image) {
				return fmt.Errorf("image %d out of range (product has %d)", image, len(g.Images()))
			}
			if a.asJSON {
				return a.printJSON(p)
			}
			fmt.Fprintf(a.out, "%s\n  id:       %s\n  price:    %s\n  category: %s\n", p.Name, p.ID, p.Price.StringFixed(2), p.Category)
			if p.Size != "" {
				fmt.Fprintf(a.out, "  size:     %s\n", p.Size)
			}
			if p.Material != "" {
				fmt.Fprintf(a.out, "  material: %s\n", p.Material)
			}
			for i, img := range g.Images() {
				mark := " "
				if i == g.Index() {
					mark = "*"
				}
				fmt.Fprintf(a.out, "  %s [%d] %s\n", mark, i, img)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&image, "image", 0, "index of the image to highlight")
	return cmd
}

func orderCmd(a *app) *cobra.Command {
	var f order.Form
	cmd := &cobra.Command{
		Use:   "order <product-id>",
		Short: "Place an order for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			pl := order.NewPlacement(a.client, order.ProductRef{ID: args[0], Name: p.Name}, order.Options{Logger: a.log})
			defer pl.Close()

			pl.Open()
			pl.SetForm(f)
			o, err := pl.Submit(cmd.Context())
			if err != nil {
				if st := pl.Status(); st.Status == submission.Error {
					fmt.Fprintln(cmd.ErrOrStderr(), st.Message)
				}
				return err
			}
			if a.asJSON {
				return a.printJSON(o)
			}
			fmt.Fprintf(a.out, "%s\n  order:   %s\n  product: %s\n", pl.Status().Message, o.ID, o.ProductName)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "buyer name")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "buyer phone")
	cmd.Flags().StringVar(&f.Address, "address", "", "delivery address")
	return cmd
}
