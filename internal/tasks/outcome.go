package tasks

import (
	"fmt"

	"github.com/dyluth/taskd/pkg/taskstore"
)

// Kind tags the terminal state of a task operation.
type Kind int

const (
	// KindCreated means a new task was written.
	KindCreated Kind = iota + 1
	// KindOK means a read or update succeeded. Reads carry the task.
	KindOK
	// KindBadRequest means the request was rejected before touching the store.
	KindBadRequest
	// KindNotFound means the task id is absent.
	KindNotFound
	// KindConflict means create found the task id already present.
	KindConflict
	// KindIntegrityViolation means the task key exists but its fields are incomplete.
	KindIntegrityViolation
	// KindProtocolMismatch means the store answered with an unexpected reply.
	KindProtocolMismatch
	// KindTransportFailure means the store could not be reached.
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindOK:
		return "ok"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindIntegrityViolation:
		return "integrity_violation"
	case KindProtocolMismatch:
		return "protocol_mismatch"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of one task operation.
// Task is set only for successful reads. Message is the user-facing text for
// logical outcomes. Err holds the cause of a failure kind.
type Outcome struct {
	Kind    Kind
	Task    *taskstore.Task
	Message string
	Err     error
}

// Failed reports whether the outcome is a server-side failure rather than a
// logical answer.
func (o Outcome) Failed() bool {
	switch o.Kind {
	case KindIntegrityViolation, KindProtocolMismatch, KindTransportFailure:
		return true
	}
	return false
}

func notFound(id string) Outcome {
	return Outcome{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Task with id '%s' doesn't exist", id),
	}
}

func conflict(id string) Outcome {
	return Outcome{
		Kind:    KindConflict,
		Message: fmt.Sprintf("Task with id '%s' already exists", id),
	}
}

// failure classifies a store error into one of the failure kinds.
func failure(err error) Outcome {
	switch {
	case taskstore.IsIncompleteRecord(err):
		return Outcome{Kind: KindIntegrityViolation, Err: err}
	case taskstore.IsProtocolMismatch(err):
		return Outcome{Kind: KindProtocolMismatch, Err: err}
	default:
		return Outcome{Kind: KindTransportFailure, Err: err}
	}
}
