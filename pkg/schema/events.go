package schema

import "time"

const FavoriteEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "visionframe.favorites",
	"name": "FavoriteEventV1",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "favorited", "type": "boolean"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "visionframe.search",
	"name": "SearchEventV1",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "results", "type": "int"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	FavoriteEventV1 struct {
		EventID    string    `avro:"event_id"`
		ProductID  string    `avro:"product_id"`
		Favorited  bool      `avro:"favorited"`
		OccurredAt time.Time `avro:"occurred_at"`
	}

	SearchEventV1 struct {
		EventID    string    `avro:"event_id"`
		Query      string    `avro:"query"`
		Results    int       `avro:"results"`
		OccurredAt time.Time `avro:"occurred_at"`
	}
)
