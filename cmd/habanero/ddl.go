package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDDLCmd(opts *options) *cobra.Command {
	var exec bool

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print or execute the CREATE TABLE statements of the class definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !exec {
				db, err := opts.open(nil)
				if err != nil {
					return err
				}
				stmts, err := db.CreateTableStatements()
				if err != nil {
					return err
				}
				for _, stmt := range stmts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", stmt.SQL())
				}
				return nil
			}

			sqlDB, err := opts.sqlDB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			db, err := opts.open(sqlDB)
			if err != nil {
				return err
			}
			return db.CreateTables(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&exec, "exec", false, "Execute the statements against --dsn")
	addDBFlags(cmd, opts)
	return cmd
}
