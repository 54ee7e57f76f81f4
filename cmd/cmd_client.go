package cmd

import (
	"github.com/gaze-network/mint-authority/cmd/client"
	"github.com/spf13/cobra"
)

func NewClientCommand() *cobra.Command {
	return client.NewClientCommand()
}
