package cmd

import (
	"fmt"

	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/prompts"
	"tradie_receptionist/platform/validator"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <tradie-id>",
	Short: "Print the system prompt and greeting for one tradie",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := operators.LoadFile(cfg.OperatorsFile, validator.New())
	if err != nil {
		return fmt.Errorf("load operators: %w", err)
	}

	op, ok := registry.ByID(args[0])
	if !ok {
		return fmt.Errorf("tradie %q not found in %s", args[0], cfg.OperatorsFile)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "First message:", prompts.BuildFirstMessage(op))
	fmt.Fprintln(out)
	fmt.Fprintln(out, prompts.BuildSystemPrompt(op))
	return nil
}
