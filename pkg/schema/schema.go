package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

// A SchemaIdentifier returns the registry id of a schema text
// registered under subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, avroSchemaText string) (int, error)
}

type schemaCreator interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// A SchemaCreator registers Avro schemas in the schema registry.
// Registering an already known schema returns its existing id.
type SchemaCreator struct {
	client schemaCreator
}

func NewSchemaCreator(client schemaCreator) SchemaCreator {
	return SchemaCreator{client}
}

func (c SchemaCreator) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreator.DetermineID"

	ss, err := c.client.CreateSchema(ctx, subject, sr.Schema{
		Type:   sr.TypeAvro,
		Schema: avroSchemaText,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: subject %q: %w", op, subject, err)
	}
	return ss.ID, nil
}

// ValueSubject returns the registry subject of topic values.
func ValueSubject(topic string) string {
	return topic + "-value"
}
