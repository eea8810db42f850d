package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/wclint/pkg/cli"
	"mercator-hq/wclint/pkg/service"
)

var tagsFlags struct {
	format string
}

var tagsCmd = &cobra.Command{
	Use:   "tags [name]",
	Short: "List indexed custom element tags",
	Long: `List the custom element tags in the schema index, or show the
definition of one tag.

Examples:
  # List every indexed tag
  wclint tags

  # Show one definition with its attributes
  wclint tags my-badge

  # JSON output
  wclint tags --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringVar(&tagsFlags.format, "format", "text", "output format: text, json")
}

// TagInfo is one element definition in command output.
type TagInfo struct {
	Tag        string   `json:"tag"`
	Library    string   `json:"library"`
	Deprecated bool     `json:"deprecated,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

func runTags(cmd *cobra.Command, args []string) error {
	svc, err := service.New(service.Options{ConfigPath: cfgFile})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cli.SetupSignalHandler()
	if err := svc.Start(ctx); err != nil {
		return err
	}

	if cfgErr := svc.ConfigError(); cfgErr != nil {
		fmt.Printf("warning: %v (using default configuration)\n", cfgErr)
	}

	if len(args) == 1 {
		def, err := svc.Tag(ctx, args[0])
		if err != nil {
			return err
		}
		if def == nil {
			return cli.NewCommandError("tags", fmt.Errorf("tag %q not found", args[0]))
		}

		info := TagInfo{Tag: def.Tag, Library: def.Library, Deprecated: def.Deprecated}
		for _, attr := range def.Attributes {
			info.Attributes = append(info.Attributes, attr.Name)
		}

		if tagsFlags.format == "json" {
			return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), info)
		}
		fmt.Printf("%s (library %s)\n", info.Tag, info.Library)
		if info.Deprecated {
			fmt.Println("  deprecated")
		}
		for _, name := range info.Attributes {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	tags, err := svc.Tags(ctx)
	if err != nil {
		return err
	}
	if tagsFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), tags)
	}
	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}
