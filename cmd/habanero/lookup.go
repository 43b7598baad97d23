package main

import (
	"fmt"
	"strings"

	"github.com/chillisoft/habanero/lookup"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *options) *cobra.Command {
	var class, prop string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Print the lookup list of a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := opts.sqlDB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			db, err := opts.open(sqlDB)
			if err != nil {
				return err
			}

			owner, err := db.Catalog().Find(class)
			if err != nil {
				return err
			}
			propDef := owner.GetPropDef(prop)
			if propDef == nil {
				return fmt.Errorf("%s has no property %s", class, prop)
			}

			var list *lookup.DatabaseLookupList
			for _, l := range db.AttachLookups() {
				if l.PropDef() == propDef {
					list = l
					break
				}
			}
			if list == nil {
				return fmt.Errorf("%s.%s has no lookup list", class, prop)
			}

			ctx := cmd.Context()
			displays, err := list.SortedDisplayValues(ctx)
			if err != nil {
				return err
			}
			keys, err := list.GetLookupList(ctx)
			if err != nil {
				return err
			}

			width := 0
			for _, display := range displays {
				if len(display) > width {
					width = len(display)
				}
			}
			for _, display := range displays {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", display+strings.Repeat(" ", width-len(display)), keys[display])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "Class name")
	cmd.Flags().StringVar(&prop, "prop", "", "Property name")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("prop")
	addDBFlags(cmd, opts)
	return cmd
}
