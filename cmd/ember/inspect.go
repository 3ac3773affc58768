package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"ember/internal/object"
	"ember/internal/trace"
	"ember/internal/ui"
)

var inspectUI bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectUI, "ui", false, "browse the snapshot interactively")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot>",
	Short: "Show the objects recorded in a heap snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	heap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}
	if err := attachTracer(cmd, heap); err != nil {
		return err
	}
	rows := snapshotRows(heap)

	if inspectUI {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("--ui requires a terminal")
		}
		return ui.RunBrowser(filepath.Base(args[0]), rows)
	}

	out := cmd.OutOrStdout()
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%8s %-12s %5s %5s  %s",
		"handle", "type", "len", "cap", "value")))
	for _, row := range rows {
		fmt.Fprintf(out, "%8d %-12s %5d %5d  %s\n",
			row.Handle, row.Type, row.Elems, row.Cap,
			runewidth.Truncate(row.Repr, 60, "…"))
	}
	fmt.Fprintf(out, "%d objects, %d bytes\n", heap.LiveObjects(), heap.LiveBytes())
	return nil
}

func loadSnapshot(path string) (*object.Heap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()
	heap, err := object.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return heap, nil
}

// attachTracer applies the --trace persistent flag to a loaded heap.
func attachTracer(cmd *cobra.Command, heap *object.Heap) error {
	levelName, err := cmd.Flags().GetString("trace")
	if err != nil {
		return err
	}
	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if level != trace.LevelOff {
		heap.SetTracer(trace.NewStream(os.Stderr, level))
	}
	return nil
}

func snapshotRows(heap *object.Heap) []ui.Row {
	var rows []ui.Row
	heap.Walk(func(handle object.Handle, obj *object.Object) {
		rows = append(rows, ui.Row{
			Handle: uint32(handle),
			Type:   obj.Tag.String(),
			Elems:  obj.Elems,
			Cap:    obj.Capacity(),
			Repr:   heap.Repr(handle.Ref()),
		})
	})
	return rows
}
