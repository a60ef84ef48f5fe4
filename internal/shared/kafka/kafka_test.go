package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, ParseBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, ParseBrokers(""))
}

func TestNewWriterTopic(t *testing.T) {
	w := NewWriter([]string{"localhost:9092"}, "staff_actions")
	assert.Equal(t, "staff_actions", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
