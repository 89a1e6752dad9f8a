//go:build windows

package solver

// InstallSignalHandlers is a no-op on platforms without SIGUSR1/SIGUSR2
// (spec.md §5 "If not available on the host platform, this is compiled
// out and the search runs unmodified").
func InstallSignalHandlers() {}

func (s *Solver[T]) pollSignals() {}
