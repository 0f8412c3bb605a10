package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"timemgr/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ResolveTaskRef resolves the task named by args.
//
// A reference is tried as a task id first. When no task has that id and the
// reference is all digits, it is a 1-based position in list order.
func ResolveTaskRef(svc service.Service, args []string) (service.Task, error) {
	if len(args) == 0 {
		return service.Task{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return service.Task{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]
	if task, ok := svc.TaskByID(ref); ok {
		return task, nil
	}

	if !isAllDigits(ref) {
		return service.Task{}, fmt.Errorf("task not found: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return service.Task{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	tasks := svc.AllTasks()
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// positions maps task ids to their 1-based position in list order, so that
// filtered views print numbers that done, rm and edit accept.
func positions(svc service.Service) map[string]int {
	tasks := svc.AllTasks()
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i + 1
	}
	return pos
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// resolveOrFail resolves a task reference and reports failures on errOut.
// ok is false when the command should exit with a user error.
func resolveOrFail(svc service.Service, args []string, errOut io.Writer) (service.Task, bool) {
	task, err := ResolveTaskRef(svc, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, false
	}
	return task, true
}

// warnIfDirty reports a failed write after a mutating command.
func warnIfDirty(svc service.Service, errOut io.Writer) {
	if svc.Dirty() {
		fmt.Fprintln(errOut, "warning: changes not saved")
	}
}
