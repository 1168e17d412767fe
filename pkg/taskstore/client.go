package taskstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrProtocolMismatch is returned when Redis answers with a reply whose shape
// the client does not expect, including error replies such as WRONGTYPE.
// It is distinct from transport failures, which are returned unwrapped from
// this sentinel.
var ErrProtocolMismatch = errors.New("unexpected reply from Redis")

// createIfAbsentScript writes the task hash only when the key is absent.
// Returns 1 when the hash was written, 0 when the key already existed.
var createIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HMSET', KEYS[1], unpack(ARGV))
return 1
`)

// Client issues task commands against Redis.
// Every operation is a single round trip with no client-side retry.
// The client is safe for concurrent use; serialization of conflicting writes
// is left to Redis.
type Client struct {
	rdb       *redis.Client
	namespace string
}

// NewClient creates a task store client.
// An empty namespace stores tasks directly under their ids.
func NewClient(redisOpts *redis.Options, namespace string) *Client {
	return &Client{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
	}
}

// NewClientFromURL parses a redis:// or rediss:// URL and creates a client.
func NewClientFromURL(url, namespace string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return NewClient(opts, namespace), nil
}

// Close closes the Redis connection pool. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Exists reports whether a task key is present.
// A zero key count is a valid answer, not an error.
func (c *Client) Exists(ctx context.Context, id string) (bool, error) {
	reply, err := c.rdb.Do(ctx, "EXISTS", TaskKey(c.namespace, id)).Result()
	if err != nil {
		return false, replyError("EXISTS", err)
	}

	count, ok := reply.(int64)
	if !ok {
		return false, fmt.Errorf("%w: EXISTS returned %T", ErrProtocolMismatch, reply)
	}
	return count != 0, nil
}

// WriteFields sets the given fields on a task hash in one HMSET.
// Only a status reply of "OK" counts as an acknowledgment.
//
// An empty field list is acknowledged without contacting Redis, since HMSET
// requires at least one pair.
func (c *Client) WriteFields(ctx context.Context, id string, fields []Field) error {
	if len(fields) == 0 {
		return nil
	}

	args := make([]interface{}, 0, 2+2*len(fields))
	args = append(args, "HMSET", TaskKey(c.namespace, id))
	args = append(args, fieldArgs(fields)...)

	reply, err := c.rdb.Do(ctx, args...).Result()
	if err != nil {
		return replyError("HMSET", err)
	}

	if status, ok := reply.(string); !ok || status != "OK" {
		return fmt.Errorf("%w: HMSET returned %v", ErrProtocolMismatch, reply)
	}
	return nil
}

// ReadFields fetches the named fields of a task hash in one HMGET.
// The result has one slot per requested name, in request order. A nil element,
// or an element of any non-string type, is reported as absent.
func (c *Client) ReadFields(ctx context.Context, id string, names []string) ([]FieldValue, error) {
	args := make([]interface{}, 0, 2+len(names))
	args = append(args, "HMGET", TaskKey(c.namespace, id))
	for _, name := range names {
		args = append(args, name)
	}

	reply, err := c.rdb.Do(ctx, args...).Result()
	if err != nil {
		return nil, replyError("HMGET", err)
	}

	elems, ok := reply.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: HMGET returned %T", ErrProtocolMismatch, reply)
	}

	values := make([]FieldValue, 0, len(elems))
	for i, elem := range elems {
		v := FieldValue{}
		if i < len(names) {
			v.Name = names[i]
		}
		if s, ok := elem.(string); ok {
			v.Value = s
			v.Present = true
		}
		values = append(values, v)
	}
	return values, nil
}

// CreateIfAbsent writes a new task hash only if the key does not exist,
// checking and writing inside a single Lua script.
// Returns false without writing when the key is already present.
func (c *Client) CreateIfAbsent(ctx context.Context, id string, fields []Field) (bool, error) {
	if len(fields) == 0 {
		return false, fmt.Errorf("no fields to write for task '%s'", id)
	}

	reply, err := createIfAbsentScript.Run(ctx, c.rdb, []string{TaskKey(c.namespace, id)}, fieldArgs(fields)...).Result()
	if err != nil {
		return false, replyError("EVALSHA", err)
	}

	created, ok := reply.(int64)
	if !ok {
		return false, fmt.Errorf("%w: create script returned %T", ErrProtocolMismatch, reply)
	}
	return created == 1, nil
}

// IsProtocolMismatch reports whether err came from an unexpected Redis reply.
func IsProtocolMismatch(err error) bool {
	return errors.Is(err, ErrProtocolMismatch)
}

func fieldArgs(fields []Field) []interface{} {
	args := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		args = append(args, f.Name, f.Value)
	}
	return args
}

// replyError separates error replies sent by the server from transport failures.
func replyError(command string, err error) error {
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return fmt.Errorf("%w: %s: %w", ErrProtocolMismatch, command, err)
	}
	return fmt.Errorf("failed to send %s to Redis: %w", command, err)
}
