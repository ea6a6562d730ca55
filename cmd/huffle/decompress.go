package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huffle/huffle"
)

var decompressOut string

var decompressCmd = &cobra.Command{
	Use:   "decompress [file]",
	Short: "Restore the original file from a huffle container",
	Long:  "Decompress a huffle container, restoring the original bytes and file extension.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := args[0]

		f, err := os.Open(in)
		if err != nil {
			fmt.Printf("Error opening %s: %s\n", in, err)
			os.Exit(1)
		}
		var ctr huffle.Container
		_, err = ctr.ReadFrom(f)
		f.Close()
		if err != nil {
			fmt.Printf("Error reading container %s: %s\n", in, err)
			os.Exit(1)
		}

		data, ext, err := huffle.Decompress(&ctr)
		if err != nil {
			fmt.Printf("Error decompressing %s: %s\n", in, err)
			os.Exit(1)
		}

		out := decompressOut
		if out == "" {
			out = decompressedPath(in, ext)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			fmt.Printf("Error writing %s: %s\n", out, err)
			os.Exit(1)
		}

		fmt.Println("Decompression successful!")
		fmt.Printf("Compressed file: %s\n", in)
		fmt.Printf("Decompressed file: %s\n", out)
		fmt.Printf("Original size: %s bytes\n", groupDigits(ctr.OriginalSize))
		fmt.Printf("Decompressed size: %s bytes\n", groupDigits(uint64(len(data))))
	},
}

func init() {
	decompressCmd.Flags().StringVarP(&decompressOut, "output", "o", "", "Output path (default <stem>_decompressed<ext>)")
}
