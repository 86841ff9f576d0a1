package stream

import (
	"fmt"
)

type payload struct {
	Name string `json:"name"`
}

func itemLine(timepoint int, data string) string {
	return fmt.Sprintf(`{"data":%s,"event":{"published_at":"2024-05-01T10:00:00","timepoint":%d,"type":"changed"},"resource_id":"res-%d"}`+"\n", data, timepoint, timepoint)
}

func nameLine(timepoint int, name string) string {
	return itemLine(timepoint, fmt.Sprintf(`{"name":%q}`, name))
}
