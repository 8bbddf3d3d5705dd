package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/repositories"
	gqlschema "github.com/shashiranjanraj/tillpoint/pkg/graphql"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

// GraphQLController exposes a read-only catalog query surface, mainly for
// reporting tools that want to shape their own payloads.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(db *gorm.DB) (*GraphQLController, error) {
	items := repositories.NewItemRepository(db)
	sales := repositories.NewSaleRepository(db)

	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "InventoryItem",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.Int},
			"sku":           &graphql.Field{Type: graphql.String},
			"name":          &graphql.Field{Type: graphql.String},
			"type":          &graphql.Field{Type: graphql.String},
			"color":         &graphql.Field{Type: graphql.String},
			"size":          &graphql.Field{Type: graphql.String},
			"price":         &graphql.Field{Type: graphql.String},
			"quantity":      &graphql.Field{Type: graphql.Int},
			"minStockLevel": &graphql.Field{Type: graphql.Int},
			"isActive":      &graphql.Field{Type: graphql.Boolean},
		},
	})

	saleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Sale",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.Int},
			"orderNumber":   &graphql.Field{Type: graphql.String},
			"quantity":      &graphql.Field{Type: graphql.Int},
			"unitPrice":     &graphql.Field{Type: graphql.String},
			"totalAmount":   &graphql.Field{Type: graphql.String},
			"paymentMethod": &graphql.Field{Type: graphql.String},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"item": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"sku": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sku, _ := p.Args["sku"].(string)
					return items.FindBySKU(p.Context, sku)
				},
			},
			"searchItems": &graphql.Field{
				Type: graphql.NewList(itemType),
				Args: graphql.FieldConfigArgument{
					"term": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					term, _ := p.Args["term"].(string)
					return items.Search(p.Context, term)
				},
			},
			"lowStockItems": &graphql.Field{
				Type: graphql.NewList(itemType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return items.LowStock(p.Context)
				},
			},
			"order": &graphql.Field{
				Type: graphql.NewList(saleType),
				Args: graphql.FieldConfigArgument{
					"orderNumber": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orderNumber, _ := p.Args["orderNumber"].(string)
					return sales.ByOrderNumber(p.Context, orderNumber)
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query executes a GraphQL request: {"query": "...", "variables": {...}}.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
