package commands

import (
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pact/internal/protocol/handshake"
	"pact/internal/transport"
)

func listenCmd() *cobra.Command {
	var (
		addr     string
		localURL string
		allow    []string
		useWS    bool
	)
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Accept connections and answer handshakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, fp, err := wire.Identity.LoadOrCreate(passphrase, localURL)
			if err != nil {
				return err
			}
			l, err := newNodeListener(localURL, allow)
			if err != nil {
				return err
			}
			l.serve = echoLoop
			eng, err := handshake.New(id, handshake.Responder, l)
			if err != nil {
				return err
			}

			log.Info().Str("addr", addr).Str("fingerprint", string(fp)).Bool("websocket", useWS).Msg("listening")

			if useWS {
				return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					conn, err := transport.UpgradeWebSocket(r.Context(), w, r)
					if err != nil {
						log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
						return
					}
					defer conn.Close()
					runHandshake(eng, conn, r.RemoteAddr)
				}))
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			defer ln.Close()
			for {
				c, err := ln.Accept()
				if err != nil {
					return err
				}
				go func() {
					conn := transport.New(c)
					defer conn.Close()
					runHandshake(eng, conn, c.RemoteAddr().String())
				}()
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":7208", "listen address")
	cmd.Flags().StringVar(&localURL, "url", "http://localhost:7208/", "our contact URL sent to peers")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "peer fingerprints to accept (empty accepts all)")
	cmd.Flags().BoolVar(&useWS, "ws", false, "serve websocket connections instead of raw TCP")
	return cmd
}

func runHandshake(eng *handshake.Engine, conn *transport.Conn, remote string) {
	if _, err := eng.Run(conn); err != nil {
		if ref, ok := handshake.IsRefusal(err); ok {
			log.Info().Str("remote", remote).Str("reason", ref.Reason).Msg("handshake refused")
			return
		}
		log.Warn().Err(err).Str("remote", remote).Msg("handshake failed")
	}
}
