package data

// Row fixtures shared by the provider tests.
var (
	simpleRow = map[string]any{
		"price": 10.5,
		"name":  "widget",
	}

	nestedRow = map[string]any{
		"id": 7,
		"attributes": map[string]any{
			"color": "red",
			"size":  3,
		},
	}
)
