package cmd

import (
	"fmt"
	"text/tabwriter"

	"tradie_receptionist/internal/operators"
	"tradie_receptionist/platform/validator"

	"github.com/spf13/cobra"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Validate the tradies file and list its entries",
	Args:  cobra.NoArgs,
	RunE:  runOperators,
}

func runOperators(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := operators.LoadFile(cfg.OperatorsFile, validator.New())
	if err != nil {
		return fmt.Errorf("load operators: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBUSINESS\tTRADE\tPHONE NUMBER ID\tTIMEZONE")
	for _, op := range registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", op.ID, op.BusinessName, op.TradeType, op.VapiPhoneNumberID, op.Location())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d tradies loaded from %s\n", registry.Count(), cfg.OperatorsFile)
	return nil
}
