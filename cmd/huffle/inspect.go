package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huffle/huffle"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "View huffle container metadata",
	Long:  "Inspect a huffle container's header without decompressing the payload.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := args[0]

		f, err := os.Open(in)
		if err != nil {
			fmt.Printf("Error opening %s: %s\n", in, err)
			os.Exit(1)
		}
		var ctr huffle.Container
		size, err := ctr.ReadFrom(f)
		f.Close()
		if err != nil {
			fmt.Printf("Error inspecting container %s: %s\n", in, err)
			os.Exit(1)
		}

		fmt.Printf("Container %s:\n", in)
		fmt.Printf("\tContainer size: %s bytes\n", groupDigits(uint64(size)))
		fmt.Printf("\tOriginal size: %s bytes\n", groupDigits(ctr.OriginalSize))
		fmt.Printf("\tExtension: %q\n", ctr.Extension)
		fmt.Printf("\tDistinct symbols: %d\n", ctr.Root.Leaves())
		fmt.Printf("\tPayload: %s bytes (%d filler bits)\n", groupDigits(uint64(len(ctr.Payload))), ctr.Padding)
	},
}
