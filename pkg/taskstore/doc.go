// Package taskstore provides the Task record type and the Redis access layer
// used by taskd.
//
// # Overview
//
// A task is stored as a Redis hash keyed by its caller-supplied id. The hash
// holds exactly three fields: title, author and description. The store owns
// all durable task state; callers hold no copy between requests.
//
// # Commands
//
// The client speaks three commands, each a single round trip:
//
//	EXISTS {key}                          -> integer
//	HMSET  {key} field value [field value] -> status "OK"
//	HMGET  {key} field [field ...]         -> array of bulk string | nil
//
// Any other reply shape, or an error reply from the server, is reported as
// ErrProtocolMismatch. Connection, I/O and context failures are returned as
// they come from go-redis and are never retried.
//
// # Key Schema
//
// With an empty namespace the task id is the key itself. With a namespace the
// key follows taskd:{namespace}:task:{id}, which lets several deployments
// share one Redis server.
//
// # Usage Example
//
//	client, err := taskstore.NewClientFromURL("redis://localhost:6379/0", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	task := &taskstore.Task{ID: "t1", Title: "A", Author: "B", Description: "C"}
//	if err := client.WriteFields(ctx, task.ID, taskstore.TaskToFields(task)); err != nil {
//		log.Fatal(err)
//	}
//
//	values, err := client.ReadFields(ctx, "t1", taskstore.FieldNames)
//	if err != nil {
//		log.Fatal(err)
//	}
//	stored, err := taskstore.FieldsToTask("t1", values)
package taskstore
