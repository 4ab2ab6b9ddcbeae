package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfo_ReadDoc(t *testing.T) {
	SwaggerInfo.Host = "localhost:8080"
	SwaggerInfo.BasePath = "/api"
	SwaggerInfo.Title = "Student Performance Report API"

	var doc struct {
		Swagger     string                                `json:"swagger"`
		Host        string                                `json:"host"`
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "localhost:8080", doc.Host)
	assert.Equal(t, "/api", doc.BasePath)

	routes := []string{
		"/",
		"/all-students",
		"/student/{roll}",
		"/students-by-grade/{grade}",
		"/branches",
		"/branch-wise-students",
		"/toppers",
		"/top-students/{count}",
		"/students-above-percentage/{percentage}",
		"/statistics",
		"/report",
		"/branch-averages",
		"/subject-averages",
		"/generate-graphs",
	}
	assert.Len(t, doc.Paths, len(routes))
	for _, route := range routes {
		ops, ok := doc.Paths[route]
		if assert.True(t, ok, route) {
			assert.Contains(t, ops, "get", route)
		}
	}

	for _, def := range []string{"domain.EnrichedStudent", "domain.ChartSet", "domain.Report", "response.Err"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
