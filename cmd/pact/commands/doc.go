// Package commands defines the pact CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init         Create the local identity (RSA key + self-signed cert)
//   - fingerprint  Print the identity fingerprint
//   - listen       Accept TCP or websocket connections and answer handshakes
//   - dial         Connect out, handshake, and exchange a probe message
//
// # Implementation
//
// The root command configures logging and builds the dependency graph
// (store, identity service) before any subcommand runs. listen and dial
// share the same handshake engine and policy listener; they differ only in
// the protocol role and in who opens the connection.
package commands
