package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janindragoonetilleke-oss/codeassist/internal/telemetry"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Print version, system, and telemetry diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetConfig()

		cmd.Printf("Version:    %s\n", c.Version)
		cmd.Printf("Collector:  %s\n", c.TelemetryBaseURL)
		if c.Disabled {
			cmd.Println("Telemetry:  disabled")
		} else {
			cmd.Println("Telemetry:  enabled")
		}

		identity := &telemetry.FileIdentity{DataDir: c.DataDir}
		cmd.Printf("User:       %s\n", identity.UserID(cmd.Context()))

		info := telemetry.CollectSystemInfo(cmd.Context(), &telemetry.HTTPIP{}, nil)
		cmd.Printf("Host:       %s (%s/%s)\n", info.Hostname, info.OS, info.Arch)
		if info.Kernel != "" {
			cmd.Printf("Kernel:     %s\n", info.Kernel)
		}
		if info.IP != nil {
			cmd.Printf("Public IP:  %s\n", *info.IP)
		} else {
			cmd.Println("Public IP:  (unresolved)")
		}
		if len(info.Accelerators) == 0 {
			cmd.Println("GPUs:       none detected")
		} else {
			for _, acc := range info.Accelerators {
				cmd.Printf("GPU:        %s (%d MB)\n", acc.Name, acc.TotalMemoryMB)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
