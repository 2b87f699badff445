package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"usersvc/lib/users"
)

var (
	queryDivision string
	queryLimit    int
	queryOffset   int
)

// queryCmd prints the listing statement without touching the database
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the SQL and bound args for a listing request",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := users.ListParams{
			Division: queryDivision,
			Limit:    queryLimit,
			Offset:   queryOffset,
		}
		sql, bound, err := users.BuildListQuery(p)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sql)
		for i, a := range bound {
			fmt.Fprintf(out, "$%d = %q\n", i+1, a)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryDivision, "division", "", "division to filter on (\"all\" for none)")
	queryCmd.Flags().IntVar(&queryLimit, "limit", users.MaxPageSize, "page size")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "rows to skip")
}
