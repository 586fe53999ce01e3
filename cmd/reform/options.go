package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"reform/internal/options"
)

var optionsCmd = &cobra.Command{
	Use:   "options [name...]",
	Short: "Show formatting options",
	Long: `options prints every option with its current value in the classic
name = value form, ready to be saved as a config file. With names it prints
just those options.`,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().StringP("config", "c", "", "config file to start from")
	optionsCmd.Flags().Bool("changed", false, "only options that differ from the defaults")
	optionsCmd.Flags().Bool("help-text", false, "put each option's help above it")
	optionsCmd.Flags().Bool("groups", false, "list the option groups and exit")
}

func runOptions(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	changed, err := cmd.Flags().GetBool("changed")
	if err != nil {
		return err
	}
	withHelp, err := cmd.Flags().GetBool("help-text")
	if err != nil {
		return err
	}
	groups, err := cmd.Flags().GetBool("groups")
	if err != nil {
		return err
	}

	loaded, err := loadConfig(configSource{path: path}, 100)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if groups {
		seen := map[string]int{}
		for _, info := range options.All() {
			seen[info.Group]++
		}
		names := make([]string, 0, len(seen))
		for g := range seen {
			names = append(names, g)
		}
		sort.Strings(names)
		for _, g := range names {
			fmt.Fprintf(out, "%-14s %d\n", g, seen[g])
		}
		return nil
	}

	if len(args) == 0 {
		_, err := fmt.Fprint(out, loaded.cfg.Describe(changed, withHelp))
		return err
	}

	var unknown []string
	for _, name := range args {
		info, ok := options.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		value, _ := loaded.cfg.Get(name)
		if withHelp {
			fmt.Fprintf(out, "# %s (%s)\n", info.Help, info.Kind)
		}
		fmt.Fprintf(out, "%s = %s\n", info.Name, value)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown option(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}
