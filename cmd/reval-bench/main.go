// Command reval-bench measures write/notify throughput of reactive
// containers under configurable load profiles.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reval-dev/reval/pkg/reval"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type profile struct {
	Name       string
	Containers int
	Observers  int
	Writes     int
}

var profiles = map[string]profile{
	"fast": {
		Name:       "fast",
		Containers: 10,
		Observers:  5,
		Writes:     10_000,
	},
	"standard": {
		Name:       "standard",
		Containers: 100,
		Observers:  10,
		Writes:     100_000,
	},
	"stress": {
		Name:       "stress",
		Containers: 1000,
		Observers:  20,
		Writes:     1_000_000,
	},
}

type report struct {
	Profile       string  `json:"profile"`
	Containers    int     `json:"containers"`
	Observers     int     `json:"observers"`
	Writes        int     `json:"writes"`
	Notifications int64   `json:"notifications"`
	Elapsed       string  `json:"elapsed"`
	WritesPerSec  float64 `json:"writes_per_sec"`
	NotifsPerSec  float64 `json:"notifications_per_sec"`
}

func main() {
	var (
		profileName string
		containers  int
		observers   int
		writes      int
		jsonOutput  bool
	)

	rootCmd := &cobra.Command{
		Use:   "reval-bench",
		Short: "Benchmark reactive container throughput",
		Long: `reval-bench exercises the reval container write/notify path under a
configurable load profile and reports sustained throughput.

Profiles: fast, standard, stress. Individual flags override profile values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := profiles[profileName]
			if !ok {
				return fmt.Errorf("unknown profile %q", profileName)
			}
			if containers > 0 {
				p.Containers = containers
			}
			if observers > 0 {
				p.Observers = observers
			}
			if writes > 0 {
				p.Writes = writes
			}

			r := run(p)
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(r)
			}
			printReport(r)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&profileName, "profile", "fast", "load profile (fast, standard, stress)")
	rootCmd.Flags().IntVar(&containers, "containers", 0, "override container count")
	rootCmd.Flags().IntVar(&observers, "observers", 0, "override observers per container")
	rootCmd.Flags().IntVar(&writes, "writes", 0, "override total write count")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("reval-bench %s (%s)\n", version, commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// run performs p.Writes round-robin across the container set and counts
// every delivered notification.
func run(p profile) report {
	cells := make([]*reval.Container[int], p.Containers)
	var notifications int64
	for i := range cells {
		cells[i] = reval.NewWith(0)
		for j := 0; j < p.Observers; j++ {
			cells[i].Observe(func(int, bool) {
				notifications++
			})
		}
	}
	notifications = 0 // drop catch-up invocations

	start := time.Now()
	for i := 0; i < p.Writes; i++ {
		cells[i%len(cells)].Set(i)
	}
	elapsed := time.Since(start)

	secs := elapsed.Seconds()
	return report{
		Profile:       p.Name,
		Containers:    p.Containers,
		Observers:     p.Observers,
		Writes:        p.Writes,
		Notifications: notifications,
		Elapsed:       elapsed.String(),
		WritesPerSec:  float64(p.Writes) / secs,
		NotifsPerSec:  float64(notifications) / secs,
	}
}

func printReport(r report) {
	fmt.Printf("profile:        %s\n", r.Profile)
	fmt.Printf("containers:     %d\n", r.Containers)
	fmt.Printf("observers/cell: %d\n", r.Observers)
	fmt.Printf("writes:         %d\n", r.Writes)
	fmt.Printf("notifications:  %d\n", r.Notifications)
	fmt.Printf("elapsed:        %s\n", r.Elapsed)
	fmt.Printf("writes/sec:     %.0f\n", r.WritesPerSec)
	fmt.Printf("notifs/sec:     %.0f\n", r.NotifsPerSec)
}
