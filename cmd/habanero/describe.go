package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chillisoft/habanero/schema"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newDescribeCmd(opts *options) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "List classes with their tables and inheritance chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			if err := catalog.Validate(); err != nil {
				return err
			}
			for _, cd := range catalog.All() {
				describeClass(cmd.OutOrStdout(), cd)
				if dump {
					dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, MaxDepth: 3, SortKeys: true}
					dumper.Fdump(cmd.OutOrStdout(), cd)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the class definitions")
	return cmd
}

func describeClass(w io.Writer, cd *schema.ClassDef) {
	var chain []string
	for _, link := range cd.InheritanceChain() {
		name := link.ClassDef.ClassName
		if strategy, ok := link.Strategy(); ok {
			name += " (" + strategy.String() + ")"
		}
		chain = append(chain, name)
	}

	var tables []string
	for _, table := range cd.PhysicalTables() {
		tables = append(tables, table.TableName)
	}

	fmt.Fprintf(w, "%s\n", cd.FullName())
	fmt.Fprintf(w, "  chain:  %s\n", strings.Join(chain, " -> "))
	fmt.Fprintf(w, "  tables: %s\n", strings.Join(tables, ", "))
	fmt.Fprintf(w, "  props:  %s\n", strings.Join(cd.PropDefColIncludingInheritance().Names(), ", "))
}
