package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ember/internal/object"
	"ember/internal/rtcfg"
)

var checkCmd = &cobra.Command{
	Use:   "check <snapshot>...",
	Short: "Validate the structural invariants of heap snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	profile := rtcfg.Default()
	if path, found, err := rtcfg.Find("."); err != nil {
		return err
	} else if found {
		profile, err = rtcfg.Load(path)
		if err != nil {
			return err
		}
	}

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	results := make([]error, len(args))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			heap, err := loadSnapshot(path)
			if err != nil {
				results[i] = err
				return nil
			}
			if err := heap.Verify(); err != nil {
				results[i] = err
				return nil
			}
			results[i] = checkBudgets(heap, profile.Heap)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	okColor := color.New(color.FgGreen)
	badColor := color.New(color.FgRed, color.Bold)
	failed := 0
	for i, path := range args {
		if results[i] != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", badColor.Sprint("FAIL"), path, results[i])
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okColor.Sprint("ok"), path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed validation", failed, len(args))
	}
	return nil
}

// checkBudgets reports whether the snapshot fits the profile's board
// budgets.
func checkBudgets(heap *object.Heap, p rtcfg.HeapProfile) error {
	if p.MaxObjects > 0 && heap.LiveObjects() > p.MaxObjects {
		return fmt.Errorf("%d objects exceed the profile budget of %d",
			heap.LiveObjects(), p.MaxObjects)
	}
	if p.MaxBytes > 0 && heap.LiveBytes() > p.MaxBytes {
		return fmt.Errorf("%d bytes exceed the profile budget of %d",
			heap.LiveBytes(), p.MaxBytes)
	}
	return nil
}
