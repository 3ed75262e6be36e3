// Command tickgen resolves, generates and verifies XMEGA tick source
// configurations.
package main

import (
	"os"

	"tickport/host/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
