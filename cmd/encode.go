package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/encoding"
)

var (
	encColumns []string
	encOutput  string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Label-encode categorical columns and save the mapping",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols := encColumns
		if len(cols) == 0 {
			cols = cfg.EncodeColumns
		}
		if len(cols) == 0 {
			return fmt.Errorf("no columns to encode: pass --columns or set encode_columns")
		}
		_, t, err := loadDataset(cmd.Context(), args)
		if err != nil {
			return err
		}
		_, m, err := encoding.Encode(t, cols...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, cc := range m.Columns {
			heading(out, "%s", cc.Column)
			tw := newTable(out)
			tw.AppendHeader(table.Row{"Value", "Code"})
			for code, v := range cc.Values {
				tw.AppendRow(table.Row{v, code})
			}
			tw.Render()
		}
		if encOutput != "" {
			if err := m.Save(encOutput); err != nil {
				return err
			}
			success(out, "Saved mapping %s to %s", m.ID, encOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringSliceVar(&encColumns, "columns", nil, "comma-separated columns to encode (default from config)")
	encodeCmd.Flags().StringVarP(&encOutput, "output", "o", "", "write the mapping JSON here")
}
