package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskAssessmentIsFullSell(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		available int
		expected  bool
	}{
		{name: "selling less than held", requested: 2, available: 3, expected: false},
		{name: "selling exactly the position", requested: 3, available: 3, expected: true},
		{name: "selling more than held", requested: 4, available: 3, expected: true},
		{name: "empty position", requested: 0, available: 0, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RiskAssessment{RequestedQuantity: tt.requested, AvailableQuantity: tt.available}
			assert.Equal(t, tt.expected, r.IsFullSell())
		})
	}
}

func TestRiskAssessmentIsHighRisk(t *testing.T) {
	tests := []struct {
		name      string
		riskLevel string
		expected  bool
	}{
		{name: "exact HIGH", riskLevel: "HIGH", expected: true},
		{name: "lowercase does not match", riskLevel: "high", expected: false},
		{name: "mixed case does not match", riskLevel: "High", expected: false},
		{name: "other level", riskLevel: "MEDIUM", expected: false},
		{name: "empty", riskLevel: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RiskAssessment{RiskLevel: tt.riskLevel}
			assert.Equal(t, tt.expected, r.IsHighRisk())
		})
	}
}
