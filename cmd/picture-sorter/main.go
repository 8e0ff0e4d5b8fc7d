package main

import (
	goflag "flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/samuelSanchezDev/picture-sorter/pkg/config"
	"github.com/samuelSanchezDev/picture-sorter/pkg/organize"
)

const version = "1.0.0"

func main() {
	defer glog.Flush()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var (
		depth      string
		compress   string
		workers    int
		debug      bool
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:   "picture-sorter",
		Short: "Organize media files by date and optionally compress the result",
		Long: "picture-sorter collects media files from one or more input directories, " +
			"drops byte-identical duplicates, sorts the survivors into date-based folders " +
			"derived from their filenames, and copies them to the output directory or into " +
			"a single archive.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			if configFile != "" {
				if err := cfg.LoadFile(configFile); err != nil {
					return err
				}
			}

			// Explicit flags win over config file values.
			if flags.Changed("depth") || cfg.Depth == "" {
				cfg.Depth = config.Depth(depth)
			}
			if flags.Changed("compress") {
				cfg.Compress = compress
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			cfg.Debug = debug

			initLogging(cfg.Debug)

			res, err := organize.Run(&cfg)
			if err != nil {
				return err
			}
			cmd.Println(res.String())
			return nil
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&cfg.Inputs, "input", "i", nil, "input directory containing media files (repeatable)")
	flags.StringVarP(&cfg.Output, "output", "o", "", "directory where to save the organized media")
	flags.StringVarP(&depth, "depth", "d", string(config.DepthMonth),
		"date organization level: none, year, month or day")
	flags.StringVar(&compress, "compress", "",
		"compress the output into an archive: zip, tar, gztar, bztar or xztar")
	flags.Lookup("compress").NoOptDefVal = "zip"
	flags.IntVar(&workers, "workers", 0, "concurrent hash workers (0 = sequential)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&configFile, "config", "", "optional YAML config file")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	return rootCmd
}

// initLogging wires glog, which registers its flags on the standard flag
// set, to the CLI surface: always log to stderr, verbose when --debug.
func initLogging(debug bool) {
	_ = goflag.CommandLine.Parse(nil)
	_ = goflag.Set("logtostderr", "true")
	if debug {
		_ = goflag.Set("v", "1")
	}
}
