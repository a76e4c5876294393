/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/suparena/automapper/internal/logging"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the compiled plan of every registered mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		mapper, err := newMapper(cmd, cfg, logging.NewNop())
		if err != nil {
			return err
		}

		plans, err := mapper.Plans()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range plans {
			fmt.Fprint(out, p.String())
			if unresolved := p.Unresolved(); len(unresolved) > 0 {
				fmt.Fprintf(out, "  unresolved: %v\n", unresolved)
			}
		}

		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			for _, pair := range mapper.Registry().Pairs() {
				def, err := mapper.Registry().Resolve(pair.Source, pair.Target)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%s\n", pair)
				dumper.Fdump(out, def.Rules())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("dump", false, "Also dump the registered rules of each definition")
}
