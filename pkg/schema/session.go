package schema

const snapshotVersionV1 byte = 1

const CartSchemaTextV1 = `{
	"type": "record",
	"namespace": "session",
	"name": "cart",
	"fields": [
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "cart_line",
				"fields": [
					{"name": "id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "unit_price", "type": "double"},
					{"name": "quantity", "type": "long"},
					{"name": "image_ref", "type": "string"},
					{"name": "category_label", "type": "string"},
					{"name": "description", "type": "string"}
				]
			}
		}}
	]
}`

const CompareSchemaTextV1 = `{
	"type": "record",
	"namespace": "session",
	"name": "compare_list",
	"fields": [
		{"name": "entries", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "compare_entry",
				"fields": [
					{"name": "id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "category", "type": "string"},
					{"name": "stock", "type": "long"},
					{"name": "rating", "type": "double"},
					{"name": "description", "type": "string"},
					{"name": "image", "type": "string"}
				]
			}
		}}
	]
}`

const WishlistSchemaTextV1 = `{
	"type": "record",
	"namespace": "session",
	"name": "wishlist",
	"fields": [
		{"name": "entries", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "wishlist_entry",
				"fields": [
					{"name": "id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "category", "type": "string"},
					{"name": "description", "type": "string"},
					{"name": "image_url", "type": "string"}
				]
			}
		}}
	]
}`

type (
	CartV1 struct {
		Lines []CartLineV1 `avro:"lines"`
	}

	CartLineV1 struct {
		ID            string  `avro:"id"`
		Name          string  `avro:"name"`
		UnitPrice     float64 `avro:"unit_price"`
		Quantity      int     `avro:"quantity"`
		ImageRef      string  `avro:"image_ref"`
		CategoryLabel string  `avro:"category_label"`
		Description   string  `avro:"description"`
	}
)

type (
	CompareV1 struct {
		Entries []CompareEntryV1 `avro:"entries"`
	}

	CompareEntryV1 struct {
		ID          string  `avro:"id"`
		Name        string  `avro:"name"`
		Price       float64 `avro:"price"`
		Category    string  `avro:"category"`
		Stock       int     `avro:"stock"`
		Rating      float64 `avro:"rating"`
		Description string  `avro:"description"`
		Image       string  `avro:"image"`
	}
)

type (
	WishlistV1 struct {
		Entries []WishlistEntryV1 `avro:"entries"`
	}

	WishlistEntryV1 struct {
		ID          string  `avro:"id"`
		Name        string  `avro:"name"`
		Price       float64 `avro:"price"`
		Category    string  `avro:"category"`
		Description string  `avro:"description"`
		ImageURL    string  `avro:"image_url"`
	}
)

func CartSnapshotV1() Snapshot {
	return NewSnapshot(snapshotVersionV1, CartSchemaTextV1)
}

func CompareSnapshotV1() Snapshot {
	return NewSnapshot(snapshotVersionV1, CompareSchemaTextV1)
}

func WishlistSnapshotV1() Snapshot {
	return NewSnapshot(snapshotVersionV1, WishlistSchemaTextV1)
}
