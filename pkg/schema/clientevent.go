package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields" : [
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "total", "type": "double"},
		{"name": "occurred_at", "type": "long"}
	]
}`

type ClientEventV1 struct {
	Kind       string  `avro:"kind"`
	ProductID  string  `avro:"product_id"`
	Quantity   int     `avro:"quantity"`
	Total      float64 `avro:"total"`
	OccurredAt int64   `avro:"occurred_at"`
}
