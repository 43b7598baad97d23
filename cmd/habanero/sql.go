package main

import (
	"fmt"
	"strings"

	"github.com/chillisoft/habanero/bo"
	"github.com/chillisoft/habanero/statement"
	"github.com/spf13/cobra"
)

func newSQLCmd(opts *options) *cobra.Command {
	var (
		class string
		op    string
		set   []string
		keys  []string
	)

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the statements that persist an object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open(nil)
			if err != nil {
				return err
			}
			values, err := parseAssignments(set)
			if err != nil {
				return err
			}
			keyValues, err := parseAssignments(keys)
			if err != nil {
				return err
			}

			var obj *bo.BusinessObject
			switch op {
			case "insert":
				obj, err = db.NewObject(class)
			case "update", "delete":
				obj, err = db.LoadObject(class, keyValues)
			default:
				return fmt.Errorf("unknown operation %q", op)
			}
			if err != nil {
				return err
			}

			for name, value := range values {
				if err := obj.SetPropertyValue(name, value); err != nil {
					return err
				}
			}
			if op == "delete" {
				obj.MarkForDelete()
			}

			stmts, err := db.Statements(obj)
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", statement.Explain(db.Dialect, stmt))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "Class name")
	cmd.Flags().StringVar(&op, "op", "insert", "Operation: insert, update or delete")
	cmd.Flags().StringArrayVar(&set, "set", nil, "Property value, Prop=value")
	cmd.Flags().StringArrayVar(&keys, "key", nil, "Persisted value of an update or delete, Prop=value")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func parseAssignments(assignments []string) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(assignments))
	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q, want Prop=value", assignment)
		}
		values[strings.TrimSpace(name)] = value
	}
	return values, nil
}
