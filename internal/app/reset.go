package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/config"
	"github.com/blackwell-systems/aw-analyzer/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear persistent idempotency and cooldown state",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	st, err := state.Open(config.StatePath())
	if err != nil {
		return err
	}
	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Println("state cleared:", config.StatePath())
	return nil
}
