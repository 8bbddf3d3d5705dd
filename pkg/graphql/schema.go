package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds a query-only schema. The API exposes GraphQL strictly for
// reads (reporting tools); mutations stay on the REST surface where the stock
// contract lives.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
