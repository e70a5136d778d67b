package main

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var flags miningFlags
	cmd := &cobra.Command{
		Use:   "suggest <file.csv> <item>",
		Short: "Suggest items frequently bought together with an item",
		Long: `Suggest mines the transaction log and lists every item that appears in a
frequent itemset together with <item>, highest support first. Items are
matched exactly: "Milk" never matches "Milkshake".`,
		Example: `  basketmine suggest Groceries_dataset.csv "whole milk" --min-support 0.01`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), cfg); err != nil {
				return err
			}

			query := args[1]
			resp, err := runPipeline(cmd.Context(), args[0], cfg, &query)
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).recommendation(*resp.Recommendation)
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}
