// Package resources defines the API response transformers. They reshape the
// GORM models into the stable wire format the register client expects,
// keeping internal columns out of the payload.
package resources

import (
	"encoding/json"

	"github.com/shashiranjanraj/tillpoint/pkg/resource"
)

// asMap normalizes the transformer input. Single resources receive the model
// struct, collections receive an already-decoded map; both flatten the same
// way through JSON.
func asMap(v interface{}) resource.Map {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return resource.Map{}
	}
	var m resource.Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return resource.Map{}
	}
	return m
}

func pick(m resource.Map, keys ...string) resource.Map {
	out := make(resource.Map, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// ItemResource is the public shape of an inventory item.
type ItemResource struct{ resource.Base }

func (t *ItemResource) ToArray(v interface{}) resource.Map {
	m := asMap(v)
	out := pick(m,
		"sku", "name", "description",
		"type", "size", "color", "design", "groupType", "styleGroup",
		"price", "cost", "quantity", "minStockLevel", "isActive",
		"supplierId", "supplier",
	)
	out["id"] = m["ID"]
	out["createdAt"] = m["CreatedAt"]
	out["updatedAt"] = m["UpdatedAt"]
	return out
}

// SaleResource is the public shape of one sold line item.
type SaleResource struct{ resource.Base }

func (t *SaleResource) ToArray(v interface{}) resource.Map {
	m := asMap(v)
	out := pick(m,
		"orderNumber", "itemId", "item", "salesAssociateId", "associate",
		"quantity", "unitPrice", "totalAmount", "paymentMethod",
	)
	out["id"] = m["ID"]
	out["createdAt"] = m["CreatedAt"]
	return out
}

// TransactionResource is the public shape of one ledger row.
type TransactionResource struct{ resource.Base }

func (t *TransactionResource) ToArray(v interface{}) resource.Map {
	m := asMap(v)
	return pick(m,
		"id", "createdAt", "itemId", "item", "transactionType",
		"quantity", "reason", "notes", "correlationId", "associateId", "associate",
	)
}
