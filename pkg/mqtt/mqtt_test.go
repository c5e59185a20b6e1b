package mqtt

import "testing"

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"pancy/automod/violations", "pancy/automod/violations", true},
		{"pancy/automod/violations", "pancy/automod/stats", false},
		{"pancy/+/violations", "pancy/automod/violations", true},
		{"pancy/+/violations", "pancy/automod/stats", false},
		{"pancy/#", "pancy/automod/violations", true},
		{"pancy/#", "pancy", true},
		{"#", "anything/at/all", true},
		{"pancy/+", "pancy/automod/violations", false},
		{"pancy/automod", "pancy/automod/violations", false},
	}

	for _, tt := range tests {
		if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}
