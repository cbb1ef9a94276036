package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/refptr/ptr"
	"github.com/wippyai/refptr/script"
	"github.com/wippyai/refptr/trace"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Path to a scenario YAML file")
		traceEvents = flag.Bool("trace", false, "Log lifecycle events to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *scriptFile == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: ptrlab -script <scenario.yaml> [-trace]")
		fmt.Fprintln(os.Stderr, "       ptrlab -i  (interactive mode)")
		os.Exit(1)
	}

	if *traceEvents {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		tracer := trace.New(logger)
		ptr.Subscribe(tracer)
		defer ptr.Unsubscribe(tracer)
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runScript(*scriptFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScript(path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	fmt.Printf("Scenario: %s\n", s.Name)
	fmt.Printf("Steps: %d\n", len(s.Steps))

	r := script.NewRunner()
	defer r.Close()
	for i := range s.Steps {
		st := &s.Steps[i]
		if err := r.Exec(s.Name, i+1, st); err != nil {
			return err
		}
		fmt.Printf("  %2d. %s %s\n", i+1, st.Op, st.Ptr)
	}

	states := r.States()
	if len(states) > 0 {
		fmt.Printf("\nFinal pointers:\n")
		for _, st := range states {
			fmt.Printf("  %s\n", formatState(st))
		}
	}
	fmt.Printf("\nOK\n")
	return nil
}

func formatState(st script.State) string {
	switch {
	case st.Empty:
		return fmt.Sprintf("%s (%s) empty", st.Name, st.Kind)
	case st.Kind == "weak" && st.Expired:
		return fmt.Sprintf("%s (weak) expired [shared=%d weak=%d]", st.Name, st.Shared, st.Weak)
	default:
		return fmt.Sprintf("%s (%s) %q [shared=%d weak=%d]", st.Name, st.Kind, st.Value, st.Shared, st.Weak)
	}
}
