package taskstore

import "fmt"

// TaskKey returns the Redis key for a task.
// An empty namespace yields the bare id so existing deployments that store
// tasks directly under their ids keep working.
// Pattern: taskd:{namespace}:task:{id}
func TaskKey(namespace, id string) string {
	if namespace == "" {
		return id
	}
	return fmt.Sprintf("taskd:%s:task:%s", namespace, id)
}
