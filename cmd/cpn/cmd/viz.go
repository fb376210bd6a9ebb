package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cpnkit/cpn/graphviz"
)

var (
	outputDir string
	format    string
)

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Render a net as a graphviz figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := loadNet(inputFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, net.Name+"."+format)
		df, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = df.Close()
		}()
		w := graphviz.New(&graphviz.Config{
			Name:    net.Name,
			Font:    graphviz.Helvetica,
			RankDir: graphviz.LeftToRight,
			Format:  graphviz.Format(format),
		})
		if err := w.Flush(df, net); err != nil {
			return err
		}
		fmt.Println("wrote", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	vizCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	vizCmd.Flags().StringVarP(&format, "format", "f", "svg", "output format")
}
