package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pact/internal/protocol/handshake"
	"pact/internal/transport"
)

func dialCmd() *cobra.Command {
	var (
		localURL string
		allow    []string
		useWS    bool
	)
	cmd := &cobra.Command{
		Use:   "dial <address>",
		Short: "Connect to a peer, handshake, and exchange a probe message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			target := args[0]

			id, _, err := wire.Identity.LoadOrCreate(passphrase, localURL)
			if err != nil {
				return err
			}
			l, err := newNodeListener(localURL, allow)
			if err != nil {
				return err
			}
			eng, err := handshake.New(id, handshake.Initiator, l)
			if err != nil {
				return err
			}

			var conn *transport.Conn
			if useWS {
				conn, err = transport.DialWebSocket(cmd.Context(), target)
			} else {
				conn, err = transport.Dial(cmd.Context(), target)
			}
			if err != nil {
				return err
			}
			defer conn.Close()

			res, err := eng.Run(conn)
			if err != nil {
				if ref, ok := handshake.IsRefusal(err); ok {
					return fmt.Errorf("peer refused: %s", ref.Reason)
				}
				return err
			}

			probe := "ping from " + localURL
			if err := res.Channel.Send(probe); err != nil {
				return err
			}
			var reply string
			if err := res.Channel.Recv(&reply); err != nil {
				return err
			}
			log.Info().Str("peer", res.PeerAddress.String()).Str("reply", reply).Msg("probe answered")
			return nil
		},
	}
	cmd.Flags().StringVar(&localURL, "url", "http://localhost:0/", "our contact URL sent to peers")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "peer fingerprints to accept (empty accepts all)")
	cmd.Flags().BoolVar(&useWS, "ws", false, "dial a websocket URL instead of a TCP address")
	return cmd
}
