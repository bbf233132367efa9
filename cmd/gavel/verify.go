package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evidentiary/gavel/internal/cli"
	"github.com/evidentiary/gavel/internal/common"
	"github.com/evidentiary/gavel/internal/config"
	"github.com/evidentiary/gavel/internal/integrity"
	"github.com/evidentiary/gavel/internal/model"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <content-hash>",
		Short: "Check one content hash against the integrity database",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindCommandFlags(cmd, map[string]string{
				"integrity.db": "integrity-db",
			})
		},
		RunE: runVerify,
	}

	cmd.Flags().String("integrity-db", "", "path to the integrity validation database")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	hash := args[0]

	snapshot, err := integrity.LoadSnapshot(ctx, config.ExpandPath(viper.GetString("integrity.db")))
	if err != nil {
		return fmt.Errorf("failed to load integrity store: %w", err)
	}

	status, notes := integrity.NewVerifier(snapshot).Verify(hash)

	switch status {
	case model.StatusVerified:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %s", hash, status)))
	case model.StatusWarning:
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %s", hash, status)))
	default:
		return common.NewUserError(
			fmt.Sprintf("no integrity record for %s", hash),
			fmt.Errorf("hash %s: %w", hash, common.ErrNotFound),
		)
	}
	if notes != "" {
		fmt.Println(cli.SubtleStyle.Render("notes: " + notes))
	}
	return nil
}
