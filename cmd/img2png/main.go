package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var (
	configPath  string
	urlFile     string
	outputDir   string
	parallel    int
	timeoutSecs int
	compression string
	verbose     bool

	rootCmd = &cobra.Command{
		Use:   "img2png [URL...]",
		Short: "Download images by URL and save them as PNG",
		Long: `img2png downloads every given image URL, decodes it (PNG, JPEG, GIF,
WebP, BMP, TIFF) and writes a PNG into the output directory. Existing files
are never overwritten; name clashes get a numeric suffix.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}
)

// errUnsuccessful makes the process exit non-zero after the summary was printed
var errUnsuccessful = errors.New("conversion finished without success")

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	flags := rootCmd.Flags()
	flags.StringVarP(&urlFile, "file", "f", "", "read URLs from file, one per line ('-' for stdin)")
	flags.StringVarP(&outputDir, "dir", "o", "", "output directory (default: ~/Downloads)")
	flags.IntVarP(&parallel, "parallel", "p", 0, "items processed at once (1-10)")
	flags.IntVar(&timeoutSecs, "timeout", 0, "per-request timeout in seconds")
	flags.StringVar(&compression, "compression", "", "PNG compression: default, speed, best, none")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "img2png v%s\n", version)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnsuccessful) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
