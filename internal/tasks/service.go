// Package tasks implements the create, read and update protocols for task
// records.
//
// Every operation is a short sequential chain of at most two store round
// trips: an existence check, then the write or read it gates. The check and
// the write are not isolated from each other, so two concurrent creates for
// the same id may both succeed. WithAtomicCreate closes that window by
// delegating create to a single conditional write.
package tasks

import (
	"context"
	"log"

	"github.com/dyluth/taskd/pkg/taskstore"
)

// Store is the subset of the task store the protocols need.
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	WriteFields(ctx context.Context, id string, fields []taskstore.Field) error
	ReadFields(ctx context.Context, id string, names []string) ([]taskstore.FieldValue, error)
}

// AtomicCreator writes a task only if its id is absent, in one round trip.
type AtomicCreator interface {
	CreateIfAbsent(ctx context.Context, id string, fields []taskstore.Field) (bool, error)
}

// Service runs task operations against a Store.
type Service struct {
	store   Store
	creator AtomicCreator
}

// Option configures a Service.
type Option func(*Service)

// WithAtomicCreate makes Create use a conditional write instead of a separate
// existence check, so duplicate ids can no longer race past each other.
func WithAtomicCreate(creator AtomicCreator) Option {
	return func(s *Service) {
		s.creator = creator
	}
}

// NewService creates a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new task.
// Returns KindConflict if the id is already present and KindCreated once the
// write is acknowledged. Empty title, author and description are stored as-is.
func (s *Service) Create(ctx context.Context, task *taskstore.Task) Outcome {
	if err := task.Validate(); err != nil {
		return record("create_task", task.ID, Outcome{Kind: KindBadRequest, Message: err.Error()})
	}

	fields := taskstore.TaskToFields(task)

	if s.creator != nil {
		created, err := s.creator.CreateIfAbsent(ctx, task.ID, fields)
		if err != nil {
			return record("create_task", task.ID, failure(err))
		}
		if !created {
			return record("create_task", task.ID, conflict(task.ID))
		}
		return record("create_task", task.ID, Outcome{Kind: KindCreated})
	}

	exists, err := s.store.Exists(ctx, task.ID)
	if err != nil {
		return record("create_task", task.ID, failure(err))
	}
	if exists {
		return record("create_task", task.ID, conflict(task.ID))
	}

	if err := s.store.WriteFields(ctx, task.ID, fields); err != nil {
		return record("create_task", task.ID, failure(err))
	}
	return record("create_task", task.ID, Outcome{Kind: KindCreated})
}

// Read fetches a task.
// Returns KindNotFound if the id is absent and KindIntegrityViolation if the
// key exists without all three fields.
func (s *Service) Read(ctx context.Context, id string) Outcome {
	if id == "" {
		return record("read_task", id, Outcome{Kind: KindBadRequest, Message: "task id is required"})
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return record("read_task", id, failure(err))
	}
	if !exists {
		return record("read_task", id, notFound(id))
	}

	values, err := s.store.ReadFields(ctx, id, taskstore.FieldNames)
	if err != nil {
		return record("read_task", id, failure(err))
	}

	task, err := taskstore.FieldsToTask(id, values)
	if err != nil {
		return record("read_task", id, failure(err))
	}
	return record("read_task", id, Outcome{Kind: KindOK, Task: task})
}

// Update overwrites the non-empty fields of task on the stored record for id.
// The id inside task is ignored. An update that supplies no non-empty field
// succeeds without changing anything; the store acknowledges the empty field
// list locally, so that no-op never reaches Redis.
func (s *Service) Update(ctx context.Context, id string, task *taskstore.Task) Outcome {
	if id == "" {
		return record("update_task", id, Outcome{Kind: KindBadRequest, Message: "task id is required"})
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return record("update_task", id, failure(err))
	}
	if !exists {
		return record("update_task", id, notFound(id))
	}

	if err := s.store.WriteFields(ctx, id, taskstore.UpdateFields(task)); err != nil {
		return record("update_task", id, failure(err))
	}
	return record("update_task", id, Outcome{Kind: KindOK})
}

// record logs the terminal state of an operation and passes it through.
func record(op, id string, o Outcome) Outcome {
	if o.Failed() {
		log.Printf("[ERROR] %s '%s': %s: %v", op, id, o.Kind, o.Err)
	} else {
		log.Printf("[DEBUG] %s '%s': %s", op, id, o.Kind)
	}
	return o
}
