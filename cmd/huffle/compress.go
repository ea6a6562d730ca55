package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huffle/huffle"
)

var compressOut string

var compressCmd = &cobra.Command{
	Use:   "compress [file]",
	Short: "Compress a file into a huffle container",
	Long:  "Compress a single file with Huffman coding and write a self-describing container next to it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := args[0]

		data, err := os.ReadFile(in)
		if err != nil {
			fmt.Printf("Error reading %s: %s\n", in, err)
			os.Exit(1)
		}

		ctr, stats, err := huffle.Compress(data, filepath.Ext(in))
		if err != nil {
			fmt.Printf("Error compressing %s: %s\n", in, err)
			os.Exit(1)
		}

		out := compressOut
		if out == "" {
			out = compressedPath(in)
		}

		f, err := os.Create(out)
		if err != nil {
			fmt.Printf("Error creating %s: %s\n", out, err)
			os.Exit(1)
		}
		if _, err := ctr.WriteTo(f); err != nil {
			f.Close()
			fmt.Printf("Error writing %s: %s\n", out, err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			fmt.Printf("Error writing %s: %s\n", out, err)
			os.Exit(1)
		}

		fmt.Println("Compression successful!")
		fmt.Printf("Original file: %s\n", in)
		fmt.Printf("Compressed file: %s\n", out)
		fmt.Printf("Original size: %s bytes\n", groupDigits(stats.OriginalSize))
		fmt.Printf("Compressed size: %s bytes\n", groupDigits(stats.CompressedSize))
		fmt.Printf("Space saved: %s bytes\n", groupDigitsSigned(stats.SpaceSaved))
		fmt.Printf("Compression ratio: %.2f%%\n", stats.Ratio)
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressOut, "output", "o", "", "Output path (default <stem>_compressed<ext>)")
}
