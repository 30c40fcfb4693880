package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
)

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode [id]",
		Aliases: []string{"d"},
		Short:   "Print the decimal record number of an id",
		Args:    a.idArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.parseID(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, id.RecordNumber())
			return err
		},
	}
}

func (a *app) to18Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to18 [id]",
		Short: "Print the correctly checksummed 18-char form of an id",
		Long: `to18 recomputes the 3 character suffix from the first 15 characters,
so it also repairs an 18-char id whose suffix is wrong.`,
		Args: a.idArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.parseID(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, id.ID18())
			return err
		},
	}
}

func (a *app) analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [id]",
		Short: "Break an id into its components and check its checksum",
		Args:  a.idArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := a.idFlag
			if len(args) == 1 {
				raw = args[0]
			}
			res, err := sfid.Analyze(raw)
			if err != nil {
				return usageError(err)
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printAnalysis(a, res)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func printAnalysis(a *app, res *sfid.Analysis) error {
	checksum := "valid"
	if !res.ChecksumValid {
		checksum = fmt.Sprintf("INVALID (expected %s)", res.ExpectedChecksum)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"15-char", res.ID15},
		{"18-char", res.ID18},
		{"Object prefix", fmt.Sprintf("%s (%s)", res.ObjectPrefix, res.ObjectType)},
		{"Instance", res.Instance},
		{"Reserved", res.Reserved},
		{"Record number", fmt.Sprintf("%s = %d", res.RecordNumberBase62, res.RecordNumber)},
		{"Checksum", fmt.Sprintf("%s %s", res.Checksum, checksum)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}
