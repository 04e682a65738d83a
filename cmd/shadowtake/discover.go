package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/internal/mdns"
)

var discoverTimeout time.Duration

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List live Shadow data services on the local network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug().Dur("timeout", discoverTimeout).Msg("browsing for services")

		hosts, err := mdns.Discover(discoverTimeout)
		if err != nil {
			return err
		}
		if len(hosts) == 0 {
			logger.Warn().Msg("no services found")
			return nil
		}

		for _, h := range hosts {
			fmt.Printf("%s\t%s\tport %d\t%v\n", h.Instance, h.Hostname, h.Port, h.Addresses)
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 3*time.Second, "browse timeout")
	rootCmd.AddCommand(discoverCmd)
}
