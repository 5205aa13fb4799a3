package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProducts(w io.Writer, ps []product.Product) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "  (no products)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range ps {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2))
	}
	tw.Flush()
}

func (a *app) printProducts(ps []product.Product) error {
	if a.asJSON {
		return a.printJSON(ps)
	}
	writeProducts(a.out, ps)
	return nil
}

func (a *app) printOrders(list []order.Order) error {
	if a.asJSON {
		return a.printJSON(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "  (no orders)")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tPRODUCT\tNAME\tPHONE\tADDRESS\tPLACED")
	for _, o := range list {
		placed := ""
		if !o.CreatedAt.IsZero() {
			placed = o.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.ProductName, o.Name, o.Phone, o.Address, placed)
	}
	return tw.Flush()
}
