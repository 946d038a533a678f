package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudForResourceType(t *testing.T) {
	tests := []struct {
		resourceType string
		want         Cloud
	}{
		{"aws_instance", CloudAWS},
		{"aws_db_instance", CloudAWS},
		{"google_compute_instance", CloudGCP},
		{"azurerm_kubernetes_cluster", CloudAzure},
		{"kubernetes_deployment", CloudUnknown},
		{"", CloudUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CloudForResourceType(tt.resourceType), tt.resourceType)
	}
}

func TestCloudDefaultRegion(t *testing.T) {
	assert.Equal(t, "us-east-1", CloudAWS.DefaultRegion())
	assert.Equal(t, "us-central1", CloudGCP.DefaultRegion())
	assert.Equal(t, "eastus", CloudAzure.DefaultRegion())
	assert.Equal(t, "", CloudUnknown.DefaultRegion())
}

func TestResourceIDDeterministic(t *testing.T) {
	a := ResourceID("aws_instance", "web", "t3.medium", "us-east-1")
	b := ResourceID("aws_instance", "web", "t3.medium", "us-east-1")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "aws_instance.web-")

	c := ResourceID("aws_instance", "web", "t3.large", "us-east-1")
	assert.NotEqual(t, a, c)
}

func TestModelAddAssignsIDAndClampsCount(t *testing.T) {
	model := NewModel()
	model.Add(CanonicalResource{Type: "aws_instance", Name: "web", Size: "t3.micro", Region: "us-east-1", Count: 0})
	model.Add(CanonicalResource{Type: "aws_instance", Name: "db", Size: "t3.micro", Region: "us-east-1", Count: 3})

	require.Equal(t, 2, model.Len())
	assert.NotEmpty(t, model.Resources[0].ID)
	assert.Equal(t, 1, model.Resources[0].Count)
	assert.Equal(t, 3, model.Resources[1].Count)

	got, ok := model.Get(model.Resources[1].ID)
	require.True(t, ok)
	assert.Equal(t, "db", got.Name)
}

func TestConfidenceWorst(t *testing.T) {
	assert.Equal(t, ConfidenceLow, ConfidenceHigh.Worst(ConfidenceLow))
	assert.Equal(t, ConfidenceMedium, ConfidenceHigh.Worst(ConfidenceMedium))
	assert.Equal(t, ConfidenceMedium, ConfidenceMedium.Worst(ConfidenceHigh))
	assert.Equal(t, ConfidenceHigh, ConfidenceHigh.Worst(ConfidenceHigh))
	assert.Equal(t, ConfidenceLow, ConfidenceLow.Worst(ConfidenceMedium))
}

func TestHasRiskFlag(t *testing.T) {
	result := &SimulationResult{RiskFlags: []string{RiskOverBudget}}
	assert.True(t, result.HasRiskFlag(RiskOverBudget))
	assert.False(t, result.HasRiskFlag(RiskAnalysisTimeout))
}
