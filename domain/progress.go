package domain

// ProgressManager reports the progress of a long-running, file-by-file
// operation (parsing the reachable file set, analyzing a dependency
// graph). It is purely observational: nothing in this repository consults
// it for correctness, and a no-op implementation is always a valid choice.
type ProgressManager interface {
	// StartTask registers a new task with a description and a total unit
	// count, returning a handle to report progress against it.
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether this manager renders to a terminal.
	IsInteractive() bool

	// Close finalizes any still-running tasks.
	Close()
}

// TaskProgress is a handle to report progress against a single task
// started via ProgressManager.StartTask.
type TaskProgress interface {
	// Increment advances the task by n units.
	Increment(n int)

	// Describe updates the task's current description.
	Describe(description string)

	// Complete marks the task as finished.
	Complete()
}
