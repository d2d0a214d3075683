// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ipcRequest/ipcResponse are the client side of the IPC socket; actual
// framing and dispatch on the compositor side is out of scope here,
// this is only the `msg` subcommand's half of the conversation.
type ipcRequest struct {
	Kind string   `json:"kind"`
	Args []string `json:"args,omitempty"`
}

type ipcResponse struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "wayscroll.sock")
	}
	return "/tmp/wayscroll.sock"
}

func sendIPC(kind string, args []string) (*ipcResponse, error) {
	conn, err := net.Dial("unix", defaultSocketPath())
	if err != nil {
		return nil, fmt.Errorf("connecting to compositor: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ipcRequest{Kind: kind, Args: args}); err != nil {
		return nil, err
	}

	var resp ipcResponse
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("compositor: %s", resp.Error)
	}
	return &resp, nil
}

func newMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Talk to a running compositor over its IPC socket",
	}
	cmd.AddCommand(
		newMsgSubcommand("outputs", "List connected outputs"),
		newMsgSubcommand("windows", "List mapped windows"),
		newMsgSubcommand("workspaces", "List rows across every canvas"),
		newMsgActionCmd(),
	)
	return cmd
}

func newMsgSubcommand(kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendIPC(kind, args)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(resp.Data, '\n'))
			return err
		},
	}
}

func newMsgActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <name> [args...]",
		Short: "Invoke a compositor action by name, as a bind would",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendIPC("action", args)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(resp.Data, '\n'))
			return err
		},
	}
}
