package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a net definition and report what could fire",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := loadNet(inputFile)
		if err != nil {
			return err
		}
		if err := net.Validate(); err != nil {
			return err
		}
		fmt.Printf("%s: %d places, %d transitions, %d tokens\n",
			net.Name, len(net.Places), len(net.Transitions), net.TokenCount())
		enabled := net.Enabled()
		if len(enabled) == 0 {
			fmt.Println("no transition is enabled")
			return nil
		}
		for _, t := range enabled {
			fmt.Printf("enabled: %s %s\n", t.Name, t.ColorSet())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
