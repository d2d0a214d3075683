// SPDX-License-Identifier: Unlicense OR MIT

package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wayscroll",
		Short:         "A scrollable-tiling Wayland compositor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newMsgCmd())
	return root
}
