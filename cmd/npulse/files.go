package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var filesDir string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List saved captures, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := filesDir
		if dir == "" {
			cfg, err := builder.LoadConfig(configPath)
			if err != nil {
				return err
			}
			dir = cfg.Acquisition.SaveDir
		}

		infos, err := builder.ListCaptures(dir)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no captures in %s\n", dir)
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tCOMPRESSION\tMODIFIED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Name, info.Size, info.Compression, info.ModTime.Format(time.DateTime))
		}
		return w.Flush()
	},
}

func init() {
	filesCmd.Flags().StringVar(&filesDir, "dir", "", "capture directory (default from config)")
}
