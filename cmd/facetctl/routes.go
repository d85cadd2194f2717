package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/router"
	"github.com/facet-unt/departamentos-api/utils/auth"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the resolved route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Building the table touches no database.
		app := fiber.New()
		err := router.SetupRoutes(app, router.Options{
			JWT: auth.NewJWTManager(auth.JWTConfig{Secret: "routes"}),
			Log: zap.NewNop(),
		})
		if err != nil {
			return err
		}

		// true leaves out middleware registered with Use
		routes := app.GetRoutes(true)
		sort.SliceStable(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, r := range routes {
			if r.Method == fiber.MethodHead {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, strings.TrimPrefix(r.Name, "."))
		}
		return w.Flush()
	},
}
