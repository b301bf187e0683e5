package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrUnknownVersion = errors.New("unknown snapshot version")

// A Snapshot encodes values stored outside the broker.
//
// The first byte of the encoded data is the schema version,
// the rest is the avro binary payload.
type Snapshot struct {
	version byte
	schema  avro.Schema
}

func NewSnapshot(version byte, schemaText string) Snapshot {
	return Snapshot{version, avro.MustParse(schemaText)}
}

func (s Snapshot) Marshal(v any) ([]byte, error) {
	const op = "Snapshot.Marshal"

	payload, err := avro.Marshal(s.schema, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	data := make([]byte, 0, len(payload)+1)
	data = append(data, s.version)
	return append(data, payload...), nil
}

func (s Snapshot) Unmarshal(data []byte, v any) error {
	const op = "Snapshot.Unmarshal"

	if len(data) == 0 || data[0] != s.version {
		return fmt.Errorf("%s: %w", op, ErrUnknownVersion)
	}

	if err := avro.Unmarshal(s.schema, data[1:], v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// A SchemaIdentifier returns the registry id for the schema text under subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, schemaText string) (int, error)
}

type schemaCreater struct {
	cl *sr.Client
}

// NewSchemaCreater returns [SchemaIdentifier] that registers
// the avro schema in the schema registry when it is not there yet.
func NewSchemaCreater(cl *sr.Client) SchemaIdentifier {
	return schemaCreater{cl}
}

func (c schemaCreater) DetermineID(
	ctx context.Context, subject, schemaText string,
) (int, error) {
	const op = "schemaCreater.DetermineID"

	ss, err := c.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: schemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
