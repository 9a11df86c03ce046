package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var localURL string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the identity key pair and self-signed certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			_, fp, err := wire.Identity.LoadOrCreate(passphrase, localURL)
			if err != nil {
				return err
			}
			fmt.Printf("Identity ready.\nFingerprint: %s\n", fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&localURL, "url", "http://localhost:7208/", "contact URL used as certificate subject")
	return cmd
}
